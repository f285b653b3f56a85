package sophosxg

import (
	"fmt"

	"github.com/clbanning/mxj/v2"
	"github.com/pkg/errors"
)

func init() {
	// Match the appliance's documented response mapping: attributes keyed as
	// @name, element text as #text.
	mxj.SetAttrPrefix("@")
}

// Status is the appliance's verdict on a Set or Remove operation, passed
// through verbatim.
type Status struct {
	Code    string
	Message string
}

// Result holds one interpreted response. Envelope is the full reply decoded
// into a nested mapping; Status is populated for Set and Remove operations
// and nil for Get.
type Result struct {
	Envelope mxj.Map
	Status   *Status
}

// interpret turns raw response bytes plus the originating operation and
// entity type into a Result or a classified failure. The login status is
// checked first, unconditionally; operation status only applies to Set and
// Remove, since for Get the appliance is trusted for read shape.
func interpret(raw []byte, op Operation, entity string) (*Result, error) {
	m, err := mxj.NewMapXml(raw)
	if err != nil {
		return nil, &ParseError{Raw: raw, Err: errors.Wrap(err, "decoding reply")}
	}

	login, err := m.ValueForPath("Response.Login.status")
	if err != nil {
		return nil, &ParseError{Raw: raw, Err: errors.New("reply has no Response.Login.status")}
	}

	if status, ok := login.(string); !ok || status != authSuccess {
		return nil, &AuthenticationError{Status: fmt.Sprint(login)}
	}

	if op == Get {
		return &Result{Envelope: m}, nil
	}

	code, err := m.ValueForPath("Response." + entity + ".Status.@code")
	if err != nil {
		return nil, &ParseError{Raw: raw, Err: errors.Errorf("reply has no status for %s", entity)}
	}

	message, _ := m.ValueForPath("Response." + entity + ".Status.#text")
	msg, _ := message.(string)

	if c := fmt.Sprint(code); c != statusSuccess {
		return nil, &OperationError{Entity: entity, Code: c, Message: msg}
	}

	return &Result{
		Envelope: m,
		Status:   &Status{Code: statusSuccess, Message: msg},
	}, nil
}

// Records extracts the entity payload of a query envelope as a flat slice.
// The appliance returns a single mapping when one record matched and a list
// when several did; Records normalizes both shapes. A nil result means the
// reply carried no records for that entity type.
func Records(envelope mxj.Map, entity string) []map[string]interface{} {
	// Index the decoded maps directly: path lookup flattens list-valued
	// leaves, which would hide every record after the first.
	resp, ok := map[string]interface{}(envelope)["Response"].(map[string]interface{})
	if !ok {
		return nil
	}

	switch t := resp[entity].(type) {
	case map[string]interface{}:
		return []map[string]interface{}{t}
	case []interface{}:
		var out []map[string]interface{}
		for _, item := range t {
			if rec, ok := item.(map[string]interface{}); ok {
				out = append(out, rec)
			}
		}
		return out
	}

	return nil
}
