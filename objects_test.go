package sophosxg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIPHostSingleAddress(t *testing.T) {
	x, sender := testSession(okReply("IPHost"))

	status, err := x.CreateIPHost(IPHost{
		Name:    "SYNCORP1",
		Address: HostIP{Address: "5.5.5.5"},
	})
	require.NoError(t, err)
	assert.Equal(t, "200", status.Code)
	assert.Equal(t, "Configuration applied successfully.", status.Message)

	require.Len(t, sender.urls, 1)
	doc := reqxml(t, sender.urls[0])
	assert.Contains(t, doc, "<Set><IPHost>"+
		"<Name>SYNCORP1</Name><IPFamily>IPv4</IPFamily><HostType>IP</HostType>"+
		"<IPAddress>5.5.5.5</IPAddress>"+
		"</IPHost></Set>")
	assert.NotContains(t, doc, "<Subnet>")
	assert.NotContains(t, doc, "<StartIPAddress>")
}

func TestCreateIPHostRange(t *testing.T) {
	x, sender := testSession(okReply("IPHost"))

	_, err := x.CreateIPHost(IPHost{
		Name:    "SYNCORP3",
		Address: HostRange{Start: "192.168.10.10", End: "192.168.10.253"},
	})
	require.NoError(t, err)

	doc := reqxml(t, sender.urls[0])
	assert.Contains(t, doc, "<StartIPAddress>192.168.10.10</StartIPAddress>")
	assert.Contains(t, doc, "<EndIPAddress>192.168.10.253</EndIPAddress>")
	assert.NotContains(t, doc, "<IPAddress>")
}

// Each host type must contribute exactly its own elements and nothing from
// the other variants.
func TestHostTypeBranchesAreExclusive(t *testing.T) {
	branches := []struct {
		addr     HostAddress
		hostType string
		expect   []string
		reject   []string
	}{
		{
			addr:     HostIP{Address: "5.5.5.5"},
			hostType: "IP",
			expect:   []string{"<IPAddress>5.5.5.5</IPAddress>"},
			reject:   []string{"<Subnet>", "<StartIPAddress>", "<EndIPAddress>", "<ListOfIPAddresses>"},
		},
		{
			addr:     HostNetwork{Address: "25.25.25.128", Subnet: "255.255.255.128"},
			hostType: "Network",
			expect:   []string{"<IPAddress>25.25.25.128</IPAddress>", "<Subnet>255.255.255.128</Subnet>"},
			reject:   []string{"<StartIPAddress>", "<EndIPAddress>", "<ListOfIPAddresses>"},
		},
		{
			addr:     HostRange{Start: "192.168.10.10", End: "192.168.10.253"},
			hostType: "IPRange",
			expect:   []string{"<StartIPAddress>192.168.10.10</StartIPAddress>", "<EndIPAddress>192.168.10.253</EndIPAddress>"},
			reject:   []string{"<IPAddress>", "<Subnet>", "<ListOfIPAddresses>"},
		},
		{
			addr:     HostList{Addresses: []string{"4.4.4.4", "5.5.5.5", "6.6.6.6"}},
			hostType: "IPList",
			expect:   []string{"<ListOfIPAddresses>4.4.4.4,5.5.5.5,6.6.6.6</ListOfIPAddresses>"},
			reject:   []string{"<IPAddress>", "<Subnet>", "<StartIPAddress>", "<EndIPAddress>"},
		},
	}

	for _, b := range branches {
		t.Run(b.hostType, func(t *testing.T) {
			x, sender := testSession(okReply("IPHost"))

			_, err := x.CreateIPHost(IPHost{Name: "host", Address: b.addr})
			require.NoError(t, err)

			doc := reqxml(t, sender.urls[0])
			assert.Contains(t, doc, "<HostType>"+b.hostType+"</HostType>")
			for _, want := range b.expect {
				assert.Contains(t, doc, want)
			}
			for _, not := range b.reject {
				assert.NotContains(t, doc, not)
			}
		})
	}
}

func TestCreateIPHostValidatesBeforeTransport(t *testing.T) {
	x, sender := testSession(okReply("IPHost"))

	_, err := x.CreateIPHost(IPHost{Name: "bad", Address: HostRange{Start: "10.0.0.1"}})

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "EndIPAddress", missing.Field)
	assert.Empty(t, sender.urls, "invalid request must never reach the wire")

	_, err = x.CreateIPHost(IPHost{Name: "bad"})
	require.ErrorAs(t, err, &missing)
	assert.Empty(t, sender.urls)
}

func TestCreateIPHostGroup(t *testing.T) {
	x, sender := testSession(okReply("IPHostGroup"))

	_, err := x.CreateIPHostGroup(IPHostGroup{
		Name:  "GROUP1",
		Hosts: []string{"SYNCORP1", "SYNCORP2", "SYNCORP3"},
	})
	require.NoError(t, err)

	doc := reqxml(t, sender.urls[0])
	assert.Contains(t, doc, "<IPHostGroup>"+
		"<Name>GROUP1</Name><IPFamily>IPv4</IPFamily><Description/>"+
		"<HostList><Host>SYNCORP1</Host><Host>SYNCORP2</Host><Host>SYNCORP3</Host></HostList>"+
		"</IPHostGroup>")
}

func TestCreateIPHostGroupEmptyStillEmitsHostList(t *testing.T) {
	x, sender := testSession(okReply("IPHostGroup"))

	_, err := x.CreateIPHostGroup(IPHostGroup{Name: "EMPTY"})
	require.NoError(t, err)

	assert.Contains(t, reqxml(t, sender.urls[0]), "<HostList/>")
}

func TestCreateIPHostsFromCsv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "hosts.csv")
	csv := "SYNCORP1,ip,5.5.5.5,\n" +
		"SYNCORP2,network,25.25.25.128,255.255.255.128\n" +
		"SYNCORP3,range,192.168.10.10,192.168.10.253\n" +
		"SYNCORP4,list,4.4.4.4 5.5.5.5 6.6.6.6,\n"
	require.NoError(t, os.WriteFile(file, []byte(csv), 0o644))

	x, sender := testSession(okReply("IPHost"))
	require.NoError(t, x.CreateIPHostsFromCsv(file))

	require.Len(t, sender.urls, 4)
	assert.Contains(t, reqxml(t, sender.urls[0]), "<IPAddress>5.5.5.5</IPAddress>")
	assert.Contains(t, reqxml(t, sender.urls[1]), "<Subnet>255.255.255.128</Subnet>")
	assert.Contains(t, reqxml(t, sender.urls[2]), "<EndIPAddress>192.168.10.253</EndIPAddress>")
	assert.Contains(t, reqxml(t, sender.urls[3]), "<ListOfIPAddresses>4.4.4.4,5.5.5.5,6.6.6.6</ListOfIPAddresses>")
}

func TestCreateIPHostsFromCsvRejectsRaggedRows(t *testing.T) {
	// Lines with differing column counts fail at the reader, before any
	// host is created.
	file := filepath.Join(t.TempDir(), "hosts.csv")
	csv := "SYNCORP1,ip,5.5.5.5\n" +
		"SYNCORP2,network,25.25.25.128,255.255.255.128\n"
	require.NoError(t, os.WriteFile(file, []byte(csv), 0o644))

	x, sender := testSession(okReply("IPHost"))
	err := x.CreateIPHostsFromCsv(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong number of fields")
	assert.Empty(t, sender.urls)
}

func TestCreateIPHostsFromCsvUnknownType(t *testing.T) {
	file := filepath.Join(t.TempDir(), "hosts.csv")
	require.NoError(t, os.WriteFile(file, []byte("bad,fqdn,syncorpgroup.com\n"), 0o644))

	x, _ := testSession(okReply("IPHost"))
	err := x.CreateIPHostsFromCsv(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown host type")
}
