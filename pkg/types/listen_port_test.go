// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestListenPort_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		port ListenPort
		want string
	}{
		{0, "0"},
		{1099, "1099"},
		{7091, "7091"},
		{9000, "9000"},
		{65535, "65535"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			got := tt.port.String()
			if got != tt.want {
				t.Errorf("ListenPort(%d).String() = %q, want %q", tt.port, got, tt.want)
			}
		})
	}
}

func TestListenPort_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		port    ListenPort
		wantErr bool
	}{
		{0, false},
		{1, false},
		{9000, false},
		{65535, false},
		{-1, true},
		{65536, true},
		{-100, true},
	}

	for _, tt := range tests {
		t.Run(tt.port.String(), func(t *testing.T) {
			t.Parallel()
			err := tt.port.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("ListenPort(%d).Validate() = %v, want nil", tt.port, err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidListenPort) {
				t.Errorf("error should wrap ErrInvalidListenPort, got: %v", err)
			}
			var lpErr *InvalidListenPortError
			if !errors.As(err, &lpErr) {
				t.Fatalf("error should be *InvalidListenPortError, got: %T", err)
			}
			if lpErr.Value != tt.port {
				t.Errorf("InvalidListenPortError.Value = %d, want %d", lpErr.Value, tt.port)
			}
		})
	}
}

func TestParseListenPort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    ListenPort
		wantErr bool
	}{
		{in: "9000", want: 9000},
		{in: " 7091 ", want: 7091},
		{in: "0", want: 0},
		{in: "", wantErr: true},
		{in: "jmx", wantErr: true},
		{in: "70000", wantErr: true},
		{in: "-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseListenPort(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidListenPort) {
					t.Errorf("ParseListenPort(%q) error = %v, want ErrInvalidListenPort", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseListenPort(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseListenPort(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
