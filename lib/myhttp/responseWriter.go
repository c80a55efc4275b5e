package myhttp

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/qusiemahm/django-oscar-api/lib/myerrors"
	"github.com/qusiemahm/django-oscar-api/lib/mylog"
)

type ResponseWriter interface {
	WriteError(c context.Context, w http.ResponseWriter, errorCode int, err error)
	Write(c context.Context, w http.ResponseWriter, httpStatus int, resp interface{})
}

type errorResponse struct {
	ErrorCode int
	Message   string
	Fields    interface{} `json:",omitempty"`
}

type SuccessResponse struct {
	Message string
}

type EmptyResponse struct {
}

// fieldErrorCarrier is implemented by errors that carry field-level details
// worth echoing back to the client (e.g. price mismatches with both values).
type fieldErrorCarrier interface {
	ErrorFields() interface{}
}

func NewWriter(logger mylog.Logger) ResponseWriter {
	return &responseWriter{
		logger: logger,
	}
}

type responseWriter struct {
	logger mylog.Logger
}

func (rw responseWriter) WriteError(c context.Context, w http.ResponseWriter, errorCode int, err error) {
	httpStatus := myerrors.GetHTTPStatus(err)
	rw.logger.Log(c, "", mylog.SeverityWarn, "Error response: http-status:%d, error-code:%d, error-msg:%s", httpStatus, errorCode, err)

	resp := errorResponse{
		ErrorCode: errorCode,
		Message:   err.Error(),
	}
	if carrier, ok := err.(fieldErrorCarrier); ok {
		resp.Fields = carrier.ErrorFields()
	}
	rw.write(w, httpStatus, resp)
}

func (rw responseWriter) Write(c context.Context, w http.ResponseWriter, httpStatus int, resp interface{}) {
	rw.logger.Log(c, "", mylog.SeverityInfo, "Success response: http-status:%d", httpStatus)
	rw.write(w, httpStatus, resp)
}

func (rw responseWriter) write(w http.ResponseWriter, httpStatus int, resp interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "\t")
	err := encoder.Encode(resp)
	if err != nil {
		log.Printf("Error writing response: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}
