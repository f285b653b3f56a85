package sophosxg

import (
	"fmt"

	"github.com/clbanning/mxj/v2"
)

// VLAN is a VLAN sub-interface (CONFIGURE - Network - Interfaces - VLAN).
// The object's Name and Hardware are derived as "<interface>.<vlanid>".
// IPv4Configuration defaults to Enable and IPv4Assignment to Static.
type VLAN struct {
	Interface         string
	VLANID            string
	Zone              string
	IPAddress         string
	Netmask           string
	IPv4Configuration string
	IPv4Assignment    string
}

// LAG is a link aggregation group (CONFIGURE - Network - Interfaces - LAG).
// Mode defaults to 802.3ad(LACP); XmitHashPolicy (default Layer2) only
// applies, and is only serialized, in that mode. MTU defaults to 1500 and
// MACAddress to Default.
type LAG struct {
	Name              string
	Interfaces        []string
	Zone              string
	IPAddress         string
	Netmask           string
	Mode              string
	XmitHashPolicy    string
	MTU               string
	MACAddress        string
	IPv4Configuration string
	IPAssignment      string
}

// BridgeMember is one interface/zone pair of a bridge.
type BridgeMember struct {
	Interface string
	Zone      string
}

// BridgePair bridges two or more interfaces (CONFIGURE - Network -
// Interfaces - Bridge). The IPv4 block (address, netmask, gateway) is
// optional as a whole: it is serialized only when IPAddress is set, and then
// Netmask and Gateway are required. MTU defaults to 1500.
type BridgePair struct {
	Name                string
	Members             []BridgeMember
	RoutingOnBridgePair string
	IPAddress           string
	Netmask             string
	Gateway             string
	MTU                 string
}

// Zone is a security zone (CONFIGURE - Network - Zones). Type must be one of
// LAN, WAN, DMZ, LOCAL, VPN or Discover and defaults to LAN. The service
// toggles define the administrative access permitted on the zone and all
// default to Disable.
type Zone struct {
	Name        string
	Type        string
	Description string

	HTTPS                string
	SSH                  string
	ClientAuthentication string
	CaptivePortal        string
	NTLM                 string
	RadiusSSO            string
	DNS                  string
	Ping                 string
	WebProxy             string
	SSLVPN               string
	UserPortal           string
	DynamicRouting       string
	SMTPRelay            string
	SNMP                 string
}

var vlanSchema = &Schema{
	Name: "VLAN",
	Key:  "Hardware",
	Fields: []FieldSpec{
		{Tag: "Name", Kind: Scalar, Required: true},
		{Tag: "Hardware", Kind: Scalar, Required: true},
		{Tag: "Interface", Kind: Scalar, Required: true},
		{Tag: "Zone", Kind: Scalar, Required: true},
		{Tag: "VLANID", Kind: Scalar, Required: true},
		{Tag: "IPv4Configuration", Kind: Scalar, Default: "Enable"},
		{Tag: "IPv4Assignment", Kind: Scalar, Default: "Static"},
		{Tag: "IPAddress", Kind: Scalar, Required: true},
		{Tag: "Netmask", Kind: Scalar, Required: true},
	},
}

var lagSchema = &Schema{
	Name: "LAG",
	Key:  "Hardware",
	Fields: []FieldSpec{
		{Tag: "Name", Kind: Scalar, Required: true},
		{Tag: "Hardware", Kind: Scalar, Required: true},
		{Tag: "MemberInterface", Kind: RepeatedList, ItemTag: "Interface"},
		{Tag: "Mode", Kind: Scalar, Default: "802.3ad(LACP)"},
		{Tag: "NetworkZone", Kind: Scalar, Required: true},
		{Tag: "IPv4Configuration", Kind: Scalar, Default: "Enable"},
		{Tag: "IPAssignment", Kind: Scalar, Default: "Static"},
		{Tag: "IPv4Address", Kind: Scalar, Required: true},
		{Tag: "Netmask", Kind: Scalar, Required: true},
		{Tag: "MTU", Kind: Scalar, Default: "1500"},
		{Tag: "MACAddress", Kind: Scalar, Default: "Default"},
		{Kind: Group, When: &Condition{Field: "Mode", Equals: "802.3ad(LACP)"}, Children: []FieldSpec{
			{Tag: "XmitHashPolicy", Kind: Scalar, Default: "Layer2"},
		}},
	},
}

var bridgePairSchema = &Schema{
	Name: "BridgePair",
	Key:  "Hardware",
	Fields: []FieldSpec{
		{Tag: "Name", Kind: Scalar, Required: true},
		{Tag: "Hardware", Kind: Scalar, Required: true},
		{Tag: "Description", Kind: Scalar, EmitEmpty: true},
		{Tag: "RoutingOnBridgePair", Kind: Scalar, Default: "Disable"},
		{Tag: "BridgeMembers", Kind: NestedGroup, MemberTag: "Member", KeyTag: "Interface", ValueTag: "Zone"},
		{Kind: Group, When: &Condition{Field: "IPAddress"}, Children: []FieldSpec{
			{Tag: "IPv4Configuration", Kind: Scalar, Default: "Enable"},
			{Tag: "IPv4Assignment", Kind: Scalar, Default: "Static"},
			{Tag: "IPAddress", Kind: Scalar, Required: true},
			{Tag: "Netmask", Kind: Scalar, Required: true},
			{Tag: "Gateway", Kind: Group, Children: []FieldSpec{
				{Tag: "GatewayName", Kind: Scalar, Required: true},
				{Tag: "GatewayIPAddress", Kind: Scalar, Required: true},
			}},
		}},
		{Tag: "MTU", Kind: Scalar, Default: "1500"},
	},
}

var zoneSchema = &Schema{
	Name: "Zone",
	Fields: []FieldSpec{
		{Tag: "Name", Kind: Scalar, Required: true},
		{Tag: "Type", Kind: Scalar, Default: "LAN"},
		{Tag: "Description", Kind: Scalar, EmitEmpty: true},
		// The access-control blocks nest in a fixed sub-block order.
		{Tag: "ApplianceAccess", Kind: Group, Children: []FieldSpec{
			{Tag: "AdminServices", Kind: Group, Children: []FieldSpec{
				{Tag: "HTTPS", Kind: Scalar, Default: "Disable"},
				{Tag: "SSH", Kind: Scalar, Default: "Disable"},
			}},
			{Tag: "AuthenticationServices", Kind: Group, Children: []FieldSpec{
				{Tag: "ClientAuthentication", Kind: Scalar, Default: "Disable"},
				{Tag: "CaptivePortal", Kind: Scalar, Default: "Disable"},
				{Tag: "NTLM", Kind: Scalar, Default: "Disable"},
				{Tag: "RadiusSSO", Kind: Scalar, Default: "Disable"},
			}},
			{Tag: "NetworkServices", Kind: Group, Children: []FieldSpec{
				{Tag: "DNS", Kind: Scalar, Default: "Disable"},
				{Tag: "Ping", Kind: Scalar, Default: "Disable"},
			}},
			{Tag: "OtherServices", Kind: Group, Children: []FieldSpec{
				{Tag: "WebProxy", Kind: Scalar, Default: "Disable"},
				{Tag: "SSLVPN", Kind: Scalar, Default: "Disable"},
				{Tag: "UserPortal", Kind: Scalar, Default: "Disable"},
				{Tag: "DynamicRouting", Kind: Scalar, Default: "Disable"},
				{Tag: "SMTPRelay", Kind: Scalar, Default: "Disable"},
				{Tag: "SNMP", Kind: Scalar, Default: "Disable"},
			}},
		}},
	},
}

// VLANs returns all VLAN interfaces on the appliance.
func (x *XG) VLANs() (mxj.Map, error) {
	return x.Query("VLAN")
}

// CreateVLAN creates or updates a VLAN sub-interface.
func (x *XG) CreateVLAN(v VLAN) (*Status, error) {
	name := ""
	if v.Interface != "" && v.VLANID != "" {
		name = v.Interface + "." + v.VLANID
	}

	return x.set(vlanSchema, Fields{
		"Name":              name,
		"Hardware":          name,
		"Interface":         v.Interface,
		"Zone":              v.Zone,
		"VLANID":            v.VLANID,
		"IPv4Configuration": v.IPv4Configuration,
		"IPv4Assignment":    v.IPv4Assignment,
		"IPAddress":         v.IPAddress,
		"Netmask":           v.Netmask,
	})
}

// DeleteVLAN removes a VLAN sub-interface by its hardware name, e.g.
// "PortD.1004".
func (x *XG) DeleteVLAN(hardware string) (*Status, error) {
	return x.remove(vlanSchema, hardware)
}

// LAGs returns all link aggregation groups on the appliance.
func (x *XG) LAGs() (mxj.Map, error) {
	return x.Query("LAG")
}

// CreateLAG creates or updates a link aggregation group.
func (x *XG) CreateLAG(l LAG) (*Status, error) {
	return x.set(lagSchema, Fields{
		"Name":              l.Name,
		"Hardware":          l.Name,
		"MemberInterface":   l.Interfaces,
		"Mode":              l.Mode,
		"NetworkZone":       l.Zone,
		"IPv4Configuration": l.IPv4Configuration,
		"IPAssignment":      l.IPAssignment,
		"IPv4Address":       l.IPAddress,
		"Netmask":           l.Netmask,
		"MTU":               l.MTU,
		"MACAddress":        l.MACAddress,
		"XmitHashPolicy":    l.XmitHashPolicy,
	})
}

// DeleteLAG removes a link aggregation group by its hardware name.
func (x *XG) DeleteLAG(hardware string) (*Status, error) {
	return x.remove(lagSchema, hardware)
}

// BridgePairs returns all bridge interfaces on the appliance.
func (x *XG) BridgePairs() (mxj.Map, error) {
	return x.Query("BridgePair")
}

// CreateBridgePair creates or updates a bridge interface.
func (x *XG) CreateBridgePair(b BridgePair) (*Status, error) {
	members := make([]Pair, 0, len(b.Members))
	for _, m := range b.Members {
		members = append(members, Pair{Key: m.Interface, Value: m.Zone})
	}

	f := Fields{
		"Name":                b.Name,
		"Hardware":            b.Name,
		"Description":         fmt.Sprintf("%d Bridges", len(b.Members)),
		"RoutingOnBridgePair": b.RoutingOnBridgePair,
		"BridgeMembers":       members,
		"IPAddress":           b.IPAddress,
		"Netmask":             b.Netmask,
		"GatewayIPAddress":    b.Gateway,
		"MTU":                 b.MTU,
	}
	if b.IPAddress != "" {
		f["GatewayName"] = "GW for " + b.Name
	}

	return x.set(bridgePairSchema, f)
}

// DeleteBridgePair removes a bridge interface by its hardware name.
func (x *XG) DeleteBridgePair(hardware string) (*Status, error) {
	return x.remove(bridgePairSchema, hardware)
}

// Zones returns all security zones on the appliance.
func (x *XG) Zones() (mxj.Map, error) {
	return x.Query("Zone")
}

// CreateZone creates or updates a security zone.
func (x *XG) CreateZone(z Zone) (*Status, error) {
	return x.set(zoneSchema, Fields{
		"Name":                 z.Name,
		"Type":                 z.Type,
		"Description":          z.Description,
		"HTTPS":                z.HTTPS,
		"SSH":                  z.SSH,
		"ClientAuthentication": z.ClientAuthentication,
		"CaptivePortal":        z.CaptivePortal,
		"NTLM":                 z.NTLM,
		"RadiusSSO":            z.RadiusSSO,
		"DNS":                  z.DNS,
		"Ping":                 z.Ping,
		"WebProxy":             z.WebProxy,
		"SSLVPN":               z.SSLVPN,
		"UserPortal":           z.UserPortal,
		"DynamicRouting":       z.DynamicRouting,
		"SMTPRelay":            z.SMTPRelay,
		"SNMP":                 z.SNMP,
	})
}

// DeleteZone removes the named security zone.
func (x *XG) DeleteZone(name string) (*Status, error) {
	return x.remove(zoneSchema, name)
}
