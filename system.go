package sophosxg

import "github.com/clbanning/mxj/v2"

// Read-only views on appliance configuration that this package defines no
// mutation schema for. Anything else the appliance exposes can be read with
// Query directly.

// Interfaces returns all physical and virtual interfaces.
func (x *XG) Interfaces() (mxj.Map, error) {
	return x.Query("Interface")
}

// AdminSettings returns the web console administration settings.
func (x *XG) AdminSettings() (mxj.Map, error) {
	return x.Query("AdminSettings")
}

// Services returns all service objects.
func (x *XG) Services() (mxj.Map, error) {
	return x.Query("Services")
}

// SystemServices returns the state of the appliance's system services.
func (x *XG) SystemServices() (mxj.Map, error) {
	return x.Query("SystemServices")
}

// LocalServiceACLs returns the local service access control list.
func (x *XG) LocalServiceACLs() (mxj.Map, error) {
	return x.Query("LocalServiceACL")
}

// CentralManagement returns the central management configuration.
func (x *XG) CentralManagement() (mxj.Map, error) {
	return x.Query("CentralManagement")
}

// Notifications returns the notification configuration.
func (x *XG) Notifications() (mxj.Map, error) {
	return x.Query("Notification")
}

// SyslogServers returns the configured syslog servers.
func (x *XG) SyslogServers() (mxj.Map, error) {
	return x.Query("SyslogServers")
}

// UnicastRoutes returns the static unicast routes.
func (x *XG) UnicastRoutes() (mxj.Map, error) {
	return x.Query("UnicastRoute")
}
