package storeapi

//
// JSON-serializable types of the store API
//

type scratchRequest struct {
	Prefix string `json:"prefix,omitempty"`
}

type pathResponse struct {
	Path string `json:"path"`
}

type errorResponse struct {
	Message string `json:"message"`
}
