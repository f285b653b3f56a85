// Package sophosxg interacts with Sophos XG firewalls using the XML API.
//
// Every call against the appliance is a single HTTPS GET whose query string
// carries one XML request document: a Request envelope holding the session
// credentials, followed by one operation element (Get, Set or Remove) wrapping
// one entity body. The package builds those documents from declarative entity
// schemas, sends them, and interprets the XML reply into either a decoded
// result or a typed error.
//
// See https://docs.sophos.com/nsg/sophos-firewall/18.0/API/index.html for the
// API itself, and KB-000038263 for enabling API access on the firewall.
//
// Importing this package calls mxj.SetAttrPrefix("@") so decoded replies key
// XML attributes as @name and element text as #text. mxj holds that setting
// in package-level state, so it applies to every mxj decode in the process.
package sophosxg

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"

	"github.com/beevik/etree"
	"github.com/parnurzeal/gorequest"
)

const (
	// DefaultPort is the TCP port the XG web console listens on.
	DefaultPort = "4444"

	// authSuccess is the exact Login status the appliance returns when the
	// credentials are accepted.
	authSuccess = "Authentication Successful"

	// statusSuccess is the Status code the appliance returns when a Set or
	// Remove operation is applied.
	statusSuccess = "200"
)

// Sender is the transport collaborator: it performs one blocking HTTP GET
// against the given URL and returns the raw response body. Implementations
// own all connection, timeout and TLS concerns.
type Sender interface {
	Send(url string) ([]byte, error)
}

// XG is a container for our session state. The credential pair is embedded
// into every request's authentication envelope; nothing on the session is
// mutated after creation, so a single XG may be shared by concurrent callers.
type XG struct {
	Host     string
	Port     string
	Username string
	Password string

	// SkipVerify disables certificate verification on the default transport.
	// The XG ships with a self-signed certificate, so this defaults to true.
	SkipVerify bool

	// Transport overrides the default gorequest-based sender when non-nil.
	Transport Sender

	// Logger, when non-nil, receives debug records for every request and
	// response. Credentials are masked before logging.
	Logger *slog.Logger

	auth *etree.Element
}

// NewSession sets up our connection to the Sophos XG firewall. The port
// defaults to 4444 and certificate verification is disabled; adjust the Port
// and SkipVerify fields before the first call if your appliance differs.
func NewSession(host, username, password string) *XG {
	auth := etree.NewElement("Request")
	login := auth.CreateElement("Login")
	login.CreateElement("Username").SetText(username)
	login.CreateElement("Password").SetText(password)

	return &XG{
		Host:       host,
		Port:       DefaultPort,
		Username:   username,
		Password:   password,
		SkipVerify: true,
		auth:       auth,
	}
}

// do serializes the command, sends it, and interprets the reply.
func (x *XG) do(cmd *Command) (*Result, error) {
	reqxml, err := cmd.Text()
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("https://%s:%s/webconsole/APIController?reqxml=%s", x.Host, x.port(), reqxml)

	if x.Logger != nil {
		x.Logger.Debug("sending request",
			"operation", string(cmd.Operation),
			"entity", cmd.Entity,
			"url", maskCredentials(url, x.Password))
	}

	raw, err := x.sender().Send(url)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if x.Logger != nil {
		x.Logger.Debug("received response", "entity", cmd.Entity, "bytes", len(raw))
	}

	return interpret(raw, cmd.Operation, cmd.Entity)
}

func (x *XG) port() string {
	if x.Port == "" {
		return DefaultPort
	}
	return x.Port
}

func (x *XG) sender() Sender {
	if x.Transport != nil {
		return x.Transport
	}
	return apiSender{skipVerify: x.SkipVerify}
}

// apiSender is the default transport. A fresh agent per call keeps the
// session safe for concurrent commands.
type apiSender struct {
	skipVerify bool
}

func (s apiSender) Send(url string) ([]byte, error) {
	_, body, errs := gorequest.New().
		TLSClientConfig(&tls.Config{InsecureSkipVerify: s.skipVerify}).
		Get(url).
		End()
	if errs != nil {
		return nil, errs[0]
	}

	return []byte(body), nil
}

// maskCredentials hides the password embedded in a request URL so the URL can
// be logged safely.
func maskCredentials(url, password string) string {
	if password == "" {
		return url
	}
	return strings.ReplaceAll(url, password, "****")
}
