package sophosxg

import "github.com/clbanning/mxj/v2"

// IPSPolicy is an intrusion prevention policy built from one of the
// appliance's policy templates.
type IPSPolicy struct {
	Name        string
	Template    string
	Description string
}

// FirewallRule is a security policy rule (PROTECT - Rules and policies).
// Status defaults to Enable, IPFamily to IPv4, Position to top and Schedule
// to "All The Time"; the scan and QoS toggles carry the appliance's own
// defaults when left empty.
//
// A rule with Identity members becomes a user rule: it serializes
// PolicyType=User with a UserPolicy body carrying the identity match block.
// Any other rule is a network rule with a NetworkPolicy body. The two forms
// are mutually exclusive on the wire.
type FirewallRule struct {
	Name        string
	Description string
	Action      string
	Status      string
	IPFamily    string
	Position    string

	SourceZones         []string
	SourceNetworks      []string
	Services            []string
	Schedule            string
	DestinationZones    []string
	DestinationNetworks []string

	LogTraffic        string
	SkipLocalDestined string

	// Identity lists the users or groups a user rule matches. Leave empty
	// for a network rule.
	Identity          []string
	MatchIdentity     string
	ShowCaptivePortal string
	DataAccounting    string

	WebFilter                string
	WebCategoryBaseQoSPolicy string
	BlockQuickQuic           string
	ScanVirus                string
	Sandstorm                string
	ScanFTP                  string
	ProxyMode                string
	DecryptHTTPS             string
	SourceSecurityHeartbeat  string
	DestSecurityHeartbeat    string
	ApplicationControl       string
	ApplicationBaseQoSPolicy string
	IntrusionPrevention      string
	TrafficShapingPolicy     string
	ScanSMTP                 string
	ScanSMTPS                string
	ScanIMAP                 string
	ScanIMAPS                string
	ScanPOP3                 string
	ScanPOP3S                string
}

var ipsPolicySchema = &Schema{
	Name: "IPSPolicy",
	Fields: []FieldSpec{
		{Tag: "Name", Kind: Scalar, Required: true},
		{Tag: "Template", Kind: Scalar, Required: true},
		{Tag: "Description", Kind: Scalar, EmitEmpty: true},
	},
}

// ruleLead and ruleTail are the policy body fields common to network and
// user rules; the identity block slots between them in a user rule. Element
// order matches what the appliance expects.
var ruleLead = []FieldSpec{
	{Tag: "Action", Kind: Scalar, Required: true},
	{Tag: "LogTraffic", Kind: Scalar, Default: "Enable"},
	{Tag: "SkipLocalDestined", Kind: Scalar, Default: "Disable"},
	{Tag: "SourceZones", Kind: RepeatedList, ItemTag: "Zone"},
	{Tag: "SourceNetworks", Kind: RepeatedList, ItemTag: "Network"},
	{Tag: "Services", Kind: RepeatedList, ItemTag: "Service"},
	{Tag: "Schedule", Kind: Scalar, Default: "All The Time"},
	{Tag: "DestinationZones", Kind: RepeatedList, ItemTag: "Zone"},
	{Tag: "DestinationNetworks", Kind: RepeatedList, ItemTag: "Network"},
}

var ruleIdentity = []FieldSpec{
	{Tag: "MatchIdentity", Kind: Scalar, Default: "Enable"},
	{Tag: "ShowCaptivePortal", Kind: Scalar, Default: "Enable"},
	{Tag: "Identity", Kind: RepeatedList, ItemTag: "Member"},
	{Tag: "DataAccounting", Kind: Scalar, Default: "Disable"},
}

var ruleTail = []FieldSpec{
	{Tag: "WebFilter", Kind: Scalar, Default: "None"},
	{Tag: "WebCategoryBaseQoSPolicy", Kind: Scalar, Default: "Revoke"},
	{Tag: "BlockQuickQuic", Kind: Scalar, Default: "Disable"},
	{Tag: "ScanVirus", Kind: Scalar, Default: "Enable"},
	{Tag: "Sandstorm", Kind: Scalar, Default: "Enable"},
	{Tag: "ScanFTP", Kind: Scalar, Default: "Disable"},
	{Tag: "ProxyMode", Kind: Scalar, Default: "Disable"},
	{Tag: "DecryptHTTPS", Kind: Scalar, Default: "Disable"},
	{Tag: "SourceSecurityHeartbeat", Kind: Scalar, Default: "Disable"},
	{Tag: "DestSecurityHeartbeat", Kind: Scalar, Default: "Disable"},
	{Tag: "ApplicationControl", Kind: Scalar, Default: "None"},
	{Tag: "ApplicationBaseQoSPolicy", Kind: Scalar, Default: "Revoke"},
	{Tag: "IntrusionPrevention", Kind: Scalar, Default: "None"},
	{Tag: "TrafficShapingPolicy", Kind: Scalar, Default: "None"},
	{Tag: "ScanSMTP", Kind: Scalar, Default: "Disable"},
	{Tag: "ScanSMTPS", Kind: Scalar, Default: "Disable"},
	{Tag: "ScanIMAP", Kind: Scalar, Default: "Disable"},
	{Tag: "ScanIMAPS", Kind: Scalar, Default: "Disable"},
	{Tag: "ScanPOP3", Kind: Scalar, Default: "Disable"},
	{Tag: "ScanPOP3S", Kind: Scalar, Default: "Disable"},
}

var firewallRuleSchema = &Schema{
	Name: "FirewallRule",
	Fields: []FieldSpec{
		{Tag: "Name", Kind: Scalar, Required: true},
		{Tag: "Description", Kind: Scalar, EmitEmpty: true},
		{Tag: "Status", Kind: Scalar, Default: "Enable"},
		{Tag: "IPFamily", Kind: Scalar, Default: "IPv4"},
		{Tag: "Position", Kind: Scalar, Default: "top"},
		{Tag: "PolicyType", Kind: Scalar, Required: true},
		{Tag: "NetworkPolicy", Kind: Group, When: &Condition{Field: "PolicyType", Equals: "Network"},
			Children: concatSpecs(ruleLead, ruleTail)},
		{Tag: "UserPolicy", Kind: Group, When: &Condition{Field: "PolicyType", Equals: "User"},
			Children: concatSpecs(ruleLead, ruleIdentity, ruleTail)},
	},
}

func concatSpecs(groups ...[]FieldSpec) []FieldSpec {
	var out []FieldSpec
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// IPSPolicies returns all IPS policies on the appliance.
func (x *XG) IPSPolicies() (mxj.Map, error) {
	return x.Query("IPSPolicy")
}

// CreateIPSPolicy creates or updates an IPS policy.
func (x *XG) CreateIPSPolicy(p IPSPolicy) (*Status, error) {
	return x.set(ipsPolicySchema, Fields{
		"Name":        p.Name,
		"Template":    p.Template,
		"Description": p.Description,
	})
}

// DeleteIPSPolicy removes the named IPS policy.
func (x *XG) DeleteIPSPolicy(name string) (*Status, error) {
	return x.remove(ipsPolicySchema, name)
}

// FirewallRules returns all firewall rules on the appliance.
func (x *XG) FirewallRules() (mxj.Map, error) {
	return x.Query("FirewallRule")
}

// CreateFirewallRule creates or updates a firewall rule.
func (x *XG) CreateFirewallRule(r FirewallRule) (*Status, error) {
	policyType := "Network"
	if len(r.Identity) > 0 {
		policyType = "User"
	}

	return x.set(firewallRuleSchema, Fields{
		"Name":                     r.Name,
		"Description":              r.Description,
		"Status":                   r.Status,
		"IPFamily":                 r.IPFamily,
		"Position":                 r.Position,
		"PolicyType":               policyType,
		"Action":                   r.Action,
		"LogTraffic":               r.LogTraffic,
		"SkipLocalDestined":        r.SkipLocalDestined,
		"SourceZones":              r.SourceZones,
		"SourceNetworks":           r.SourceNetworks,
		"Services":                 r.Services,
		"Schedule":                 r.Schedule,
		"DestinationZones":         r.DestinationZones,
		"DestinationNetworks":      r.DestinationNetworks,
		"MatchIdentity":            r.MatchIdentity,
		"ShowCaptivePortal":        r.ShowCaptivePortal,
		"Identity":                 r.Identity,
		"DataAccounting":           r.DataAccounting,
		"WebFilter":                r.WebFilter,
		"WebCategoryBaseQoSPolicy": r.WebCategoryBaseQoSPolicy,
		"BlockQuickQuic":           r.BlockQuickQuic,
		"ScanVirus":                r.ScanVirus,
		"Sandstorm":                r.Sandstorm,
		"ScanFTP":                  r.ScanFTP,
		"ProxyMode":                r.ProxyMode,
		"DecryptHTTPS":             r.DecryptHTTPS,
		"SourceSecurityHeartbeat":  r.SourceSecurityHeartbeat,
		"DestSecurityHeartbeat":    r.DestSecurityHeartbeat,
		"ApplicationControl":       r.ApplicationControl,
		"ApplicationBaseQoSPolicy": r.ApplicationBaseQoSPolicy,
		"IntrusionPrevention":      r.IntrusionPrevention,
		"TrafficShapingPolicy":     r.TrafficShapingPolicy,
		"ScanSMTP":                 r.ScanSMTP,
		"ScanSMTPS":                r.ScanSMTPS,
		"ScanIMAP":                 r.ScanIMAP,
		"ScanIMAPS":                r.ScanIMAPS,
		"ScanPOP3":                 r.ScanPOP3,
		"ScanPOP3S":                r.ScanPOP3S,
	})
}

// DeleteFirewallRule removes the named firewall rule.
func (x *XG) DeleteFirewallRule(name string) (*Status, error) {
	return x.remove(firewallRuleSchema, name)
}
