// Package inputs implements the ostree commit input: it materializes the
// commits named by a request into a fresh repository allocated from the
// build store and describes the result to the invoker.
package inputs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Input origins: where the commits named by a request come from.
const (
	OriginSource   = "org.osbuild.source"
	OriginPipeline = "org.osbuild.pipeline"
)

// SourceKind names the source cache that holds commits fetched ahead of a
// build.
const SourceKind = "org.osbuild.ostree"

// Options describe what to do with a single commit beyond copying it.
type Options struct {
	// Ref is an optional name to attach to the commit in the destination
	// repository.
	Ref string `json:"ref,omitempty"`
}

// Reference names one commit to materialize. For the source origin the key
// is the commit id itself, for the pipeline origin it names the pipeline
// that produced the commit.
type Reference struct {
	Key     string
	Options Options
}

// References is the ordered list of references of a request. The wire
// format is a JSON object keyed by reference; the document order of the
// keys is preserved, including duplicates. A plain JSON array of keys is
// accepted as a shorthand for an object with empty options.
type References []Reference

func (refs *References) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))

	token, err := decoder.Token()
	if err != nil {
		return err
	}
	delim, ok := token.(json.Delim)
	if !ok {
		return fmt.Errorf("refs must be an object or an array")
	}

	parsed := References{}
	switch delim {
	case '{':
		for decoder.More() {
			token, err := decoder.Token()
			if err != nil {
				return err
			}
			key := token.(string) // keys inside an object are always strings

			var options Options
			if err := decoder.Decode(&options); err != nil {
				return fmt.Errorf("options for ref %q: %w", key, err)
			}
			parsed = append(parsed, Reference{Key: key, Options: options})
		}
	case '[':
		for decoder.More() {
			var key string
			if err := decoder.Decode(&key); err != nil {
				return err
			}
			parsed = append(parsed, Reference{Key: key})
		}
	default:
		return fmt.Errorf("refs must be an object or an array")
	}

	*refs = parsed
	return nil
}

func (refs References) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, ref := range refs {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(ref.Key)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		options, err := json.Marshal(ref.Options)
		if err != nil {
			return nil, err
		}
		b.Write(options)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// APIArgs carry the service endpoints the invoker hands to the input.
type APIArgs struct {
	// Store is the path of the store API socket.
	Store string `json:"store"`
}

// Request is what the invoker feeds the input on stdin.
type Request struct {
	Origin string     `json:"origin"`
	Refs   References `json:"refs"`
	API    APIArgs    `json:"api"`
}

// ParseRequest reads and validates a request from r.
func ParseRequest(r io.Reader) (*Request, error) {
	var request Request
	if err := json.NewDecoder(r).Decode(&request); err != nil {
		return nil, NewInvalidRequestError("parsing request: %v", err)
	}
	if err := request.validate(); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *Request) validate() error {
	switch r.Origin {
	case OriginSource, OriginPipeline:
	default:
		return NewInvalidRequestError("unknown origin %q", r.Origin)
	}

	if len(r.Refs) == 0 {
		return NewInvalidRequestError("at least one ref must be requested")
	}

	return nil
}
