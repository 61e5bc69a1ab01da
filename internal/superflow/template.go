// Package superflow describes the traffic templates the generator knows how
// to tune for a target transaction size. The set of templates is closed:
// names are resolved when the configuration is loaded and an unknown name is
// a configuration error.
package superflow

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"bpauto/internal/domain"
)

// Kind selects how a template is adjusted to the requested size
type Kind int

const (
	// KindNone templates are used as-is
	KindNone Kind = iota
	// KindExactSize sets a size parameter on one action
	KindExactSize
	// KindDataFile points one action at an uploaded payload file
	KindDataFile
	// KindRepeat appends extra actions until the flow reaches the size
	KindRepeat
)

func (k Kind) String() string {
	switch k {
	case KindExactSize:
		return "exact-size"
	case KindDataFile:
		return "data-file"
	case KindRepeat:
		return "repeat"
	default:
		return "none"
	}
}

// Template is one traffic template and the way it is sized
type Template struct {
	Name string
	Kind Kind

	// KindExactSize and KindDataFile
	Action int
	Param  string

	// KindRepeat: sizes below Floor are raised to Floor, then
	// round((size-Base)/Step)-1 copies of Repeat are added
	Floor  int
	Base   int
	Step   int
	Repeat string
}

const (
	appDataAction = "$superflow addAction 1 server application -appdata-min 1400 -appdata-max 1400"
	netflowAction = "$superflow addAction 1 client data_records -num_records 40"
	ldapAction    = `$superflow addAction 1 server search_response_resultentry -objectname "CN=Admins,OU=Access Groups,OU=Groups,OU=Test,DC=Test,DC=com" -attributes "Attribute1,Attribute2,Attribute3,Attribute4,Attribute5,Attribute6"`
)

var syslogAction = `$superflow addAction 1 client syslog_message -content "` +
	strings.Repeat("This is a syslog message.", 17) + `"`

func exact(name string, action int, param string) Template {
	return Template{Name: name, Kind: KindExactSize, Action: action, Param: param}
}

func dataFile(name string, action int, param string) Template {
	return Template{Name: name, Kind: KindDataFile, Action: action, Param: param}
}

func repeat(name string, floor, base, step int, cmd string) Template {
	return Template{Name: name, Kind: KindRepeat, Floor: floor, Base: base, Step: step, Repeat: cmd}
}

func plain(name string) Template {
	return Template{Name: name, Kind: KindNone}
}

var templates = map[string]Template{}

func init() {
	for _, t := range []Template{
		exact("HTTP", 2, "response-data-gen-exact"),
		exact("HTTPS_TLS12_RSA2K_AES256_SHA384_RESUME", 4, "response-data-gen-exact"),
		exact("GOOGLE_BASE", 2, "response-data-gen-exact"),
		exact("FACEBOOK_BASE", 2, "response-data-gen-exact"),
		exact("SOAP", 2, "response-data-gen-exact"),
		exact("FTP", 6, "download-size"),
		exact("SMBv2", 14, "file_size"),
		exact("POP3", 2, "attachment_size"),
		exact("IMAP", 2, "attachment_size"),
		exact("SMTP", 10, "attachment-size"),

		dataFile("NFSv3", 11, "datafile"),
		dataFile("RSYNC", 5, "raw_message_file"),
		dataFile("SSH", 3, "raw_message_file"),
		dataFile("QUIC", 5, "stream_data_file"),

		repeat("HTTPS_SIM", 7250, 5700, 1400, appDataAction),
		repeat("GOOGLE_HTTPS", 7250, 5700, 1400, appDataAction),
		repeat("PAN_UPDATES", 7250, 5700, 1400, appDataAction),
		repeat("FACEBOOK_BASE_HTTPS", 7250, 5700, 1400, appDataAction),
		repeat("OUTLOOK_WEB_ONLINE_HTTPS", 7250, 5700, 1400, appDataAction),
		repeat("SHAREPOINT_ONLINE_HTTPS", 7250, 5700, 1400, appDataAction),
		repeat("NETFLOWv9", 1500, 94, 1309, netflowAction),
		repeat("SYSLOG", 1500, 94, 470, syslogAction),
		repeat("LDAP_SEARCH", 3000, 1500, 212, ldapAction),

		plain("ORACLE_SELECT"), plain("MSSQL_SELECT"), plain("MYSQL_SELECT"),
		plain("POSTGRESQL"), plain("DB2"), plain("LPD"), plain("RDP"),
		plain("FIX"), plain("TELNET"), plain("TFTP"), plain("MSRPC"),
		plain("RTSP"), plain("SCCP"), plain("SIP"), plain("SNMPv1"),
		plain("SNMPv2c"), plain("SNMPv3"), plain("SNMP_TIMEOUT"),
		plain("NETBIOS"), plain("DNS"), plain("DNS_TIMEOUT"), plain("NTPv4"),
		plain("NTPv4_TIMEOUT"), plain("CITRIX"),
	} {
		templates[t.Name] = t
	}
}

// Lookup resolves a template by name
func Lookup(name string) (Template, error) {
	t, ok := templates[name]
	if !ok {
		return Template{}, domain.NewConfigurationError(name, 0, "unknown superflow template %q", name)
	}
	return t, nil
}

// Names returns all known template names, sorted
func Names() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NeedsFile reports whether the template is sized by a payload file
func (t Template) NeedsFile() bool {
	return t.Kind == KindDataFile
}

// ModifyCommands returns the commands that size an open $superflow to
// size bytes (or point it at file for data-file templates)
func (t Template) ModifyCommands(size int, file string) []string {
	switch t.Kind {
	case KindExactSize:
		return []string{fmt.Sprintf("$superflow modifyAction %d -%s %d", t.Action, t.Param, size)}
	case KindDataFile:
		return []string{fmt.Sprintf("$superflow modifyAction %d -%s %s", t.Action, t.Param, file)}
	case KindRepeat:
		if size < t.Floor {
			size = t.Floor
		}
		loops := int(math.RoundToEven(float64(size-t.Base) / float64(t.Step)))
		var cmds []string
		for i := 1; i < loops; i++ {
			cmds = append(cmds, t.Repeat)
		}
		return cmds
	default:
		return nil
	}
}
