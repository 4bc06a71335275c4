package core

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Role
		wantErr bool
	}{
		{name: "Empty Defaults To Publisher", in: "", want: RolePublisher},
		{name: "Publisher", in: "publisher", want: RolePublisher},
		{name: "Subscriber", in: "subscriber", want: RoleSubscriber},
		{name: "Mixed Case", in: "Subscriber", want: RoleSubscriber},
		{name: "Whitespace Only Defaults To Publisher", in: "  ", want: RolePublisher},
		{name: "Unknown", in: "moderator", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRole(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRole(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
