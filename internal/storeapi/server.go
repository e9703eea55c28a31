package storeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/osbuild/osbuild-modules/internal/common"
	"github.com/osbuild/osbuild-modules/internal/prometheus"
)

// Server exposes a store Backend over the store API.
type Server struct {
	backend Backend
	router  *httprouter.Router
}

func NewServer(backend Backend) *Server {
	s := &Server{
		backend: backend,
	}

	s.router = httprouter.New()
	s.router.RedirectTrailingSlash = false
	s.router.RedirectFixedPath = false
	s.router.MethodNotAllowed = http.HandlerFunc(methodNotAllowedHandler)
	s.router.NotFound = http.HandlerFunc(notFoundHandler)

	s.router.POST("/api/store/v1/scratch", s.allocateScratchHandler)
	s.router.GET("/api/store/v1/trees/:pipeline_id", s.pipelineTreeHandler)
	s.router.GET("/api/store/v1/sources/:source_kind", s.sourceCacheHandler)
	s.router.Handler("GET", "/metrics", promhttp.Handler())

	return s
}

func (s *Server) Serve(listener net.Listener) error {
	server := http.Server{Handler: s}

	err := server.Serve(listener)
	if err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	logrus.WithFields(logrus.Fields{
		"operation_id": common.GenerateOperationID(),
		"method":       request.Method,
		"path":         request.URL.Path,
	}).Info("store api request")

	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	s.router.ServeHTTP(writer, request)
}

// jsonErrorf() is similar to http.Error(), but returns the message in a json
// object with a "message" field.
func jsonErrorf(writer http.ResponseWriter, code int, message string, args ...interface{}) {
	writer.WriteHeader(code)

	// ignore error, because we cannot do anything useful with it
	_ = json.NewEncoder(writer).Encode(&errorResponse{
		Message: fmt.Sprintf(message, args...),
	})
}

func methodNotAllowedHandler(writer http.ResponseWriter, request *http.Request) {
	jsonErrorf(writer, http.StatusMethodNotAllowed, "method not allowed")
}

func notFoundHandler(writer http.ResponseWriter, request *http.Request) {
	jsonErrorf(writer, http.StatusNotFound, "not found")
}

func countRequest(operation string, code int) {
	prometheus.StoreRequests.WithLabelValues(operation, strconv.Itoa(code)).Inc()
}

func (s *Server) allocateScratchHandler(writer http.ResponseWriter, request *http.Request, _ httprouter.Params) {
	contentType := request.Header["Content-Type"]
	if len(contentType) != 1 || contentType[0] != "application/json" {
		countRequest("scratch", http.StatusUnsupportedMediaType)
		jsonErrorf(writer, http.StatusUnsupportedMediaType, "request must contain application/json data")
		return
	}

	var body scratchRequest
	if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
		countRequest("scratch", http.StatusBadRequest)
		jsonErrorf(writer, http.StatusBadRequest, "%v", err)
		return
	}

	path, err := s.backend.AllocateScratch(body.Prefix)
	if err != nil {
		countRequest("scratch", http.StatusInternalServerError)
		jsonErrorf(writer, http.StatusInternalServerError, "%v", err)
		return
	}

	prometheus.ScratchAllocations.Inc()
	countRequest("scratch", http.StatusCreated)
	writer.WriteHeader(http.StatusCreated)
	// ignore error, because we cannot do anything useful with it
	_ = json.NewEncoder(writer).Encode(pathResponse{Path: path})
}

func (s *Server) pipelineTreeHandler(writer http.ResponseWriter, request *http.Request, params httprouter.Params) {
	path, err := s.backend.PipelineTree(params.ByName("pipeline_id"))
	if err != nil {
		s.resolveError(writer, "trees", err)
		return
	}

	countRequest("trees", http.StatusOK)
	// ignore error, because we cannot do anything useful with it
	_ = json.NewEncoder(writer).Encode(pathResponse{Path: path})
}

func (s *Server) sourceCacheHandler(writer http.ResponseWriter, request *http.Request, params httprouter.Params) {
	path, err := s.backend.SourceCache(params.ByName("source_kind"))
	if err != nil {
		s.resolveError(writer, "sources", err)
		return
	}

	countRequest("sources", http.StatusOK)
	// ignore error, because we cannot do anything useful with it
	_ = json.NewEncoder(writer).Encode(pathResponse{Path: path})
}

func (s *Server) resolveError(writer http.ResponseWriter, operation string, err error) {
	var notFound NotFoundError
	if errors.As(err, &notFound) {
		countRequest(operation, http.StatusNotFound)
		jsonErrorf(writer, http.StatusNotFound, "%v", err)
		return
	}

	countRequest(operation, http.StatusInternalServerError)
	jsonErrorf(writer, http.StatusInternalServerError, "%v", err)
}
