package sophosxg

import (
	"strings"

	"github.com/clbanning/mxj/v2"
	"github.com/pkg/errors"
	easycsv "github.com/scottdware/go-easycsv"
)

// HostAddress is the address variant of an IP host object. Exactly one
// concrete type is supplied per host: HostIP, HostNetwork, HostRange or
// HostList. Each variant contributes only its own elements to the request
// body, so invalid field combinations cannot be expressed.
type HostAddress interface {
	hostFields(f Fields)
}

// HostIP is a single address.
type HostIP struct {
	Address string
}

func (h HostIP) hostFields(f Fields) {
	f["HostType"] = "IP"
	f["IPAddress"] = h.Address
}

// HostNetwork is a network address with its subnet mask. The appliance does
// not verify the mask over the API, so supply it in dotted form as the web
// console would.
type HostNetwork struct {
	Address string
	Subnet  string
}

func (h HostNetwork) hostFields(f Fields) {
	f["HostType"] = "Network"
	f["IPAddress"] = h.Address
	f["Subnet"] = h.Subnet
}

// HostRange is an inclusive start/end address range.
type HostRange struct {
	Start string
	End   string
}

func (h HostRange) hostFields(f Fields) {
	f["HostType"] = "IPRange"
	f["StartIPAddress"] = h.Start
	f["EndIPAddress"] = h.End
}

// HostList is a list of individual addresses, joined with commas on the wire.
type HostList struct {
	Addresses []string
}

func (h HostList) hostFields(f Fields) {
	f["HostType"] = "IPList"
	f["ListOfIPAddresses"] = strings.Join(h.Addresses, ",")
}

// IPHost is an IP host object (SYSTEM - Host and Services - IP Host).
// IPFamily defaults to IPv4.
type IPHost struct {
	Name     string
	IPFamily string
	Address  HostAddress
}

// IPHostGroup groups previously created IP hosts (SYSTEM - Host and
// Services - IP Host group). IPFamily defaults to IPv4.
type IPHostGroup struct {
	Name        string
	Description string
	IPFamily    string
	Hosts       []string
}

var ipHostSchema = &Schema{
	Name: "IPHost",
	Fields: []FieldSpec{
		{Tag: "Name", Kind: Scalar, Required: true},
		{Tag: "IPFamily", Kind: Scalar, Default: "IPv4"},
		{Tag: "HostType", Kind: Scalar, Default: "IP"},
		{Kind: Group, When: &Condition{Field: "HostType", Equals: "IP"}, Children: []FieldSpec{
			{Tag: "IPAddress", Kind: Scalar, Required: true},
		}},
		{Kind: Group, When: &Condition{Field: "HostType", Equals: "Network"}, Children: []FieldSpec{
			{Tag: "IPAddress", Kind: Scalar, Required: true},
			{Tag: "Subnet", Kind: Scalar, Required: true},
		}},
		{Kind: Group, When: &Condition{Field: "HostType", Equals: "IPRange"}, Children: []FieldSpec{
			{Tag: "StartIPAddress", Kind: Scalar, Required: true},
			{Tag: "EndIPAddress", Kind: Scalar, Required: true},
		}},
		{Kind: Group, When: &Condition{Field: "HostType", Equals: "IPList"}, Children: []FieldSpec{
			{Tag: "ListOfIPAddresses", Kind: Scalar, Required: true},
		}},
	},
}

var ipHostGroupSchema = &Schema{
	Name: "IPHostGroup",
	Fields: []FieldSpec{
		{Tag: "Name", Kind: Scalar, Required: true},
		{Tag: "IPFamily", Kind: Scalar, Default: "IPv4"},
		{Tag: "Description", Kind: Scalar, EmitEmpty: true},
		{Tag: "HostList", Kind: RepeatedList, ItemTag: "Host"},
	},
}

// IPHosts returns all IP host objects on the appliance.
func (x *XG) IPHosts() (mxj.Map, error) {
	return x.Query("IPHost")
}

// CreateIPHost creates or updates an IP host object.
func (x *XG) CreateIPHost(h IPHost) (*Status, error) {
	if h.Address == nil {
		return nil, &MissingFieldError{Entity: "IPHost", Field: "HostType"}
	}

	f := Fields{"Name": h.Name, "IPFamily": h.IPFamily}
	h.Address.hostFields(f)

	return x.set(ipHostSchema, f)
}

// DeleteIPHost removes the named IP host object.
func (x *XG) DeleteIPHost(name string) (*Status, error) {
	return x.remove(ipHostSchema, name)
}

// IPHostGroups returns all IP host groups on the appliance.
func (x *XG) IPHostGroups() (mxj.Map, error) {
	return x.Query("IPHostGroup")
}

// CreateIPHostGroup creates or updates an IP host group. The member hosts
// must already exist on the appliance.
func (x *XG) CreateIPHostGroup(g IPHostGroup) (*Status, error) {
	return x.set(ipHostGroupSchema, Fields{
		"Name":        g.Name,
		"IPFamily":    g.IPFamily,
		"Description": g.Description,
		"HostList":    g.Hosts,
	})
}

// DeleteIPHostGroup removes the named IP host group.
func (x *XG) DeleteIPHostGroup(name string) (*Status, error) {
	return x.remove(ipHostGroupSchema, name)
}

// CreateIPHostsFromCsv creates IP host objects in bulk from a CSV file. Every
// line carries four columns: name, type, value, extra. Type must be one of
// ip, network, range or list. For network the extra column is the subnet
// mask, for range it is the end address; for ip and list leave it empty with
// a trailing comma, since the reader rejects lines with differing column
// counts. For list the value column holds space-separated addresses.
func (x *XG) CreateIPHostsFromCsv(file string) error {
	c, err := easycsv.Open(file)
	if err != nil {
		return err
	}

	for _, line := range c {
		if len(line) < 3 {
			return errors.Errorf("%s: line needs at least name, type and value columns", file)
		}

		name := line[0]
		objtype := line[1]
		value := line[2]

		var extra string
		if len(line) > 3 {
			extra = line[3]
		}

		var addr HostAddress
		switch objtype {
		case "ip":
			addr = HostIP{Address: value}
		case "network":
			addr = HostNetwork{Address: value, Subnet: extra}
		case "range":
			addr = HostRange{Start: value, End: extra}
		case "list":
			addr = HostList{Addresses: strings.Fields(value)}
		default:
			return errors.Errorf("%s: unknown host type %q for %s", file, objtype, name)
		}

		if _, err := x.CreateIPHost(IPHost{Name: name, Address: addr}); err != nil {
			return err
		}
	}

	return nil
}
