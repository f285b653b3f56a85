package sophosxg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authFailed = `<Response APIVersion="1800.2">` +
	`<Login><status>Authentication Failure</status></Login>` +
	`</Response>`

func TestAuthFailureRegardlessOfOperation(t *testing.T) {
	for _, op := range []Operation{Get, Set, Remove} {
		_, err := interpret([]byte(authFailed), op, "IPHost")

		var auth *AuthenticationError
		require.ErrorAs(t, err, &auth, "operation %s", op)
		assert.Equal(t, "Authentication Failure", auth.Status)
	}
}

func TestAuthCheckedBeforeOperationStatus(t *testing.T) {
	// Entity-level success must not mask a failed login.
	reply := `<Response>` +
		`<Login><status>Authentication Failure</status></Login>` +
		`<IPHost><Status code="200">Configuration applied successfully.</Status></IPHost>` +
		`</Response>`

	_, err := interpret([]byte(reply), Set, "IPHost")

	var auth *AuthenticationError
	require.ErrorAs(t, err, &auth)
}

func TestMutateSuccessPassesMessageThrough(t *testing.T) {
	reply := `<Response>` +
		`<Login><status>Authentication Successful</status></Login>` +
		`<IPHost><Status code="200">Configuration applied successfully.</Status></IPHost>` +
		`</Response>`

	res, err := interpret([]byte(reply), Set, "IPHost")
	require.NoError(t, err)
	require.NotNil(t, res.Status)
	assert.Equal(t, "200", res.Status.Code)
	assert.Equal(t, "Configuration applied successfully.", res.Status.Message)
}

func TestMutateFailureCarriesCodeAndMessageVerbatim(t *testing.T) {
	reply := `<Response>` +
		`<Login><status>Authentication Successful</status></Login>` +
		`<IPHost><Status code="502">Operation could not be performed on Entity.</Status></IPHost>` +
		`</Response>`

	_, err := interpret([]byte(reply), Remove, "IPHost")

	var op *OperationError
	require.ErrorAs(t, err, &op)
	assert.Equal(t, "IPHost", op.Entity)
	assert.Equal(t, "502", op.Code)
	assert.Equal(t, "Operation could not be performed on Entity.", op.Message)
}

func TestQueryIgnoresEntityStatus(t *testing.T) {
	// A Get reply has no Status block; authentication success is sufficient.
	reply := `<Response>` +
		`<Login><status>Authentication Successful</status></Login>` +
		`<IPHost><Name>SYNCORP1</Name><IPAddress>5.5.5.5</IPAddress></IPHost>` +
		`</Response>`

	res, err := interpret([]byte(reply), Get, "IPHost")
	require.NoError(t, err)
	assert.Nil(t, res.Status)

	name, err := res.Envelope.ValueForPath("Response.IPHost.Name")
	require.NoError(t, err)
	assert.Equal(t, "SYNCORP1", name)
}

func TestMalformedReplyIsParseError(t *testing.T) {
	raw := []byte(`<Response><Login>`)

	_, err := interpret(raw, Get, "IPHost")

	var parse *ParseError
	require.ErrorAs(t, err, &parse)
	assert.Equal(t, raw, parse.Raw)
}

func TestReplyWithoutLoginIsParseError(t *testing.T) {
	_, err := interpret([]byte(`<Response><Other>x</Other></Response>`), Get, "IPHost")

	var parse *ParseError
	require.ErrorAs(t, err, &parse)
}

func TestMutateReplyWithoutStatusIsParseError(t *testing.T) {
	reply := `<Response>` +
		`<Login><status>Authentication Successful</status></Login>` +
		`</Response>`

	_, err := interpret([]byte(reply), Set, "IPHost")

	var parse *ParseError
	require.ErrorAs(t, err, &parse)
}

func TestRecordsNormalizesSingleAndMany(t *testing.T) {
	single := `<Response>` +
		`<Login><status>Authentication Successful</status></Login>` +
		`<Zone><Name>LAN</Name></Zone>` +
		`</Response>`

	res, err := interpret([]byte(single), Get, "Zone")
	require.NoError(t, err)

	recs := Records(res.Envelope, "Zone")
	require.Len(t, recs, 1)
	assert.Equal(t, "LAN", recs[0]["Name"])

	many := `<Response>` +
		`<Login><status>Authentication Successful</status></Login>` +
		`<Zone><Name>LAN</Name></Zone>` +
		`<Zone><Name>WAN</Name></Zone>` +
		`<Zone><Name>DMZ</Name></Zone>` +
		`</Response>`

	res, err = interpret([]byte(many), Get, "Zone")
	require.NoError(t, err)

	recs = Records(res.Envelope, "Zone")
	require.Len(t, recs, 3)
	assert.Equal(t, "LAN", recs[0]["Name"])
	assert.Equal(t, "WAN", recs[1]["Name"])
	assert.Equal(t, "DMZ", recs[2]["Name"])

	assert.Nil(t, Records(res.Envelope, "VLAN"))
}
