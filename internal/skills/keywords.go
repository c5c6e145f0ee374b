package skills

import "regexp"

// skillKeywords maps each known agent skill to the domain keywords that mark
// a ticket as relevant to it. Skills an agent declares outside this table are
// ignored during scoring.
var skillKeywords = map[string][]string{
	"Networking": {
		"vpn", "network", "networking", "router", "switch", "firewall",
		"dns", "dhcp", "tcp", "ip", "subnet", "vlan", "wifi", "wireless",
		"connection", "connectivity", "ping", "traceroute", "bandwidth",
	},
	"Linux_Administration": {
		"linux", "ubuntu", "centos", "redhat", "bash", "shell", "terminal",
		"ssh", "sudo", "chmod", "chown", "cron", "systemd", "apache",
		"nginx", "mysql", "postgresql", "server", "unix",
	},
	"Cloud_AWS": {
		"aws", "amazon", "ec2", "s3", "cloudformation", "lambda",
		"rds", "vpc", "cloudwatch", "iam", "route53", "elb",
		"auto scaling", "azure", "cloud", "hosting",
	},
	"VPN_Troubleshooting": {
		"vpn", "tunnel", "ipsec", "l2tp", "pptp", "openvpn",
		"remote access", "site-to-site", "authentication",
		"concentrator", "client", "endpoint",
	},
	"Hardware_Diagnostics": {
		"hardware", "diagnostic", "memory", "ram", "cpu", "disk",
		"ssd", "hdd", "motherboard", "power supply", "fan",
		"temperature", "bios", "uefi", "boot", "post",
	},
	"Windows_Server_2022": {
		"windows server", "server 2022", "server 2019", "server 2016",
		"iis", "hyper-v", "powershell", "registry", "event viewer",
		"services", "roles", "features",
	},
	"Active_Directory": {
		"active directory", "ad", "domain controller", "dc",
		"group policy", "gpo", "ldap", "kerberos", "ntlm",
		"forest", "domain", "ou", "user account", "computer account",
	},
	"Virtualization_VMware": {
		"vmware", "vsphere", "vcenter", "esxi", "virtual machine",
		"vm", "hypervisor", "virtualization", "snapshot",
		"vmotion", "ha", "drs",
	},
	"Software_Licensing": {
		"license", "licensing", "activation", "key", "volume licensing",
		"cal", "subscription", "office 365", "microsoft 365",
	},
	"Network_Security": {
		"security", "firewall", "intrusion", "malware", "antivirus",
		"threat", "vulnerability", "patch", "encryption",
		"certificate", "ssl", "tls",
	},
	"Database_SQL": {
		"database", "sql", "mysql", "postgresql", "oracle",
		"sql server", "query", "table", "index", "backup",
		"restore", "replication",
	},
	"Firewall_Configuration": {
		"firewall", "iptables", "pfsense", "checkpoint",
		"fortigate", "cisco asa", "rules", "acl", "port",
		"protocol", "block", "allow",
	},
	"Identity_Management": {
		"identity", "sso", "saml", "oauth", "ldap",
		"authentication", "authorization", "mfa", "2fa",
		"identity provider", "federation",
	},
	"SaaS_Integrations": {
		"saas", "integration", "api", "webhook", "connector",
		"salesforce", "servicenow", "slack", "teams",
		"sharepoint", "onedrive",
	},
	"Microsoft_365": {
		"microsoft 365", "office 365", "outlook", "word",
		"excel", "powerpoint", "teams", "sharepoint",
		"onedrive", "exchange", "azure ad",
	},
	"SharePoint_Online": {
		"sharepoint", "sharepoint online", "site collection",
		"document library", "list", "workflow", "permissions",
		"search", "content type",
	},
	"PowerShell_Scripting": {
		"powershell", "script", "cmdlet", "pipeline",
		"automation", "dsc", "remoting", "ise",
		"gallery", "module",
	},
	"Laptop_Repair": {
		"laptop", "notebook", "screen", "keyboard", "touchpad",
		"battery", "charger", "adapter", "hinge", "repair",
	},
	"Printer_Support": {
		"printer", "printing", "toner", "ink", "paper jam",
		"queue", "driver", "spooler", "network printer",
	},
}

// skillPatterns carries the compiled whole-word patterns for every keyword,
// built once at startup.
var skillPatterns = compileSkillPatterns()

func compileSkillPatterns() map[string][]*regexp.Regexp {
	patterns := make(map[string][]*regexp.Regexp, len(skillKeywords))
	for skill, keywords := range skillKeywords {
		compiled := make([]*regexp.Regexp, 0, len(keywords))
		for _, kw := range keywords {
			compiled = append(compiled, regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\b`))
		}
		patterns[skill] = compiled
	}
	return patterns
}
