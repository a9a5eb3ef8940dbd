package graphql

import (
	"bytes"
	"encoding/json"
)

// Request is the POST body sent to the endpoint.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName,omitempty"`
}

// Response is the GraphQL envelope exactly as the server sent it.
type Response struct {
	Data       json.RawMessage        `json:"data,omitempty"`
	Errors     []GraphQLError         `json:"errors,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`

	// StatusCode is the HTTP status the envelope arrived with.
	StatusCode int `json:"-"`
}

// GraphQLError is one entry of the envelope's errors array.
type GraphQLError struct {
	Message    string                 `json:"message"`
	Locations  []Location             `json:"locations,omitempty"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e GraphQLError) Error() string {
	return e.Message
}

func (r *Response) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasData reports whether data is present and not null.
func (r *Response) HasData() bool {
	d := bytes.TrimSpace(r.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// ErrorMessages returns the message of every GraphQL error.
func (r *Response) ErrorMessages() []string {
	if len(r.Errors) == 0 {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return msgs
}

// DecodeData unmarshals data into v. Numbers decoded into interface{}
// values become json.Number so no precision is lost.
func (r *Response) DecodeData(v interface{}) error {
	if !r.HasData() {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(r.Data))
	dec.UseNumber()
	return dec.Decode(v)
}
