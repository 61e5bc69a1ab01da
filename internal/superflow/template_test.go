package superflow

import (
	"errors"
	"strings"
	"testing"

	"bpauto/internal/domain"
	"bpauto/internal/tcl"
)

func TestLookup(t *testing.T) {
	tmpl, err := Lookup("FTP")
	if err != nil {
		t.Fatalf("Lookup(FTP): %v", err)
	}
	if tmpl.Kind != KindExactSize || tmpl.Action != 6 {
		t.Errorf("FTP template = %+v", tmpl)
	}

	_, err = Lookup("GOPHER")
	var cfgErr *domain.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != len(templates) {
		t.Fatalf("Names() has %d entries, want %d", len(names), len(templates))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted at %d: %s >= %s", i, names[i-1], names[i])
		}
	}
}

func TestModifyCommands(t *testing.T) {
	tests := []struct {
		template string
		size     int
		file     string
		want     []string
	}{
		{"HTTP", 4096, "", []string{"$superflow modifyAction 2 -response-data-gen-exact 4096"}},
		{"SMBv2", 1000, "", []string{"$superflow modifyAction 14 -file_size 1000"}},
		{"SMTP", 2048, "", []string{"$superflow modifyAction 10 -attachment-size 2048"}},
		{"QUIC", 0, "payload.bin", []string{"$superflow modifyAction 5 -stream_data_file payload.bin"}},
		{"RSYNC", 0, "rsync.bin", []string{"$superflow modifyAction 5 -raw_message_file rsync.bin"}},
		{"DNS", 9999, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			tmpl, err := Lookup(tt.template)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			got := tmpl.ModifyCommands(tt.size, tt.file)
			if len(got) != len(tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("command %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRepeatCount(t *testing.T) {
	tests := []struct {
		name     string
		template string
		size     int
		want     int
	}{
		{"below floor uses floor", "HTTPS_SIM", 100, 0},
		{"three steps", "HTTPS_SIM", 10000, 2},
		// (9200-5700)/1400 = 2.5 rounds half to even
		{"half rounds to even", "HTTPS_SIM", 9200, 1},
		{"netflow floor", "NETFLOWv9", 0, 0},
		{"netflow large", "NETFLOWv9", 13184, 9},
		{"ldap", "LDAP_SEARCH", 4000, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Lookup(tt.template)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			got := tmpl.ModifyCommands(tt.size, "")
			if len(got) != tt.want {
				t.Errorf("got %d commands, want %d", len(got), tt.want)
			}
			for _, cmd := range got {
				if cmd != tmpl.Repeat {
					t.Errorf("unexpected command %q", cmd)
				}
			}
		})
	}
}

func TestSyslogContent(t *testing.T) {
	if strings.Count(syslogAction, "This is a syslog message.") != 17 {
		t.Error("syslog action should carry 17 message copies")
	}
}

func TestBuilderCreate(t *testing.T) {
	buf := tcl.NewBuffer()
	b := NewBuilder("lab_", buf)

	http, _ := Lookup("HTTP")
	if err := b.Create("web", http, 1024, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	want := []string{
		`set superflow [$bps createSuperflow -name "lab_web" -template "HTTP"]`,
		`$superflow modifyAction 2 -response-data-gen-exact 1024`,
		`$superflow save -force`,
	}
	got := buf.Lines()
	if len(got) != len(want) {
		t.Fatalf("got %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}

	t.Run("data file template requires file", func(t *testing.T) {
		nfs, _ := Lookup("NFSv3")
		before := buf.Len()
		if err := b.Create("nfs", nfs, 0, ""); err == nil {
			t.Error("expected error for missing file")
		}
		if buf.Len() != before {
			t.Error("failed create must not emit commands")
		}
	})
}
