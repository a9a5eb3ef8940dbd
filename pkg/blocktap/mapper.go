package blocktap

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/saturnines/blocktap-go/pkg/errors"
	"github.com/saturnines/blocktap-go/pkg/transport/graphql"
)

var jsonNull = []byte("null")

// checkErrors raises the envelope's GraphQL errors for typed methods.
func checkErrors(op string, resp *graphql.Response) error {
	if !resp.HasErrors() {
		return nil
	}
	causes := make([]error, len(resp.Errors))
	for i, e := range resp.Errors {
		causes[i] = e
	}
	return errors.NewRequestError(op, resp.StatusCode, errors.Join(causes...), resp.ErrorMessages()...)
}

// rootField returns data.<root>. ok is false when the field is present
// but null. A response without data, or without the root key, does not
// have the shape the query asked for and is a decode error.
func rootField(op string, resp *graphql.Response, root string) (json.RawMessage, bool, error) {
	if !resp.HasData() {
		return nil, false, decodeError(op, resp, fmt.Errorf("response has no data"))
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, false, decodeError(op, resp, err)
	}
	raw, ok := data[root]
	if !ok {
		return nil, false, decodeError(op, resp, fmt.Errorf("data has no %q field", root))
	}
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return nil, false, nil
	}
	return raw, true, nil
}

// decodeList maps a list root. A null list comes back as an empty result.
func decodeList[T any](op string, resp *graphql.Response, root string) ([]T, error) {
	raw, ok, err := rootField(op, resp, root)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, decodeError(op, resp, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// decodeOne maps a singular root. Null means the object does not exist.
func decodeOne[T any](op string, resp *graphql.Response, root string) (*T, error) {
	raw, ok, err := rootField(op, resp, root)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewRequestError(op, resp.StatusCode, fmt.Errorf("%s: %w", root, errors.ErrNotFound))
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, decodeError(op, resp, err)
	}
	return &out, nil
}

func decodeError(op string, resp *graphql.Response, err error) error {
	return errors.NewRequestError(op, resp.StatusCode, errors.WrapError(err, errors.ErrDecode, "map "+op))
}
