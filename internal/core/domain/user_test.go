package domain

import "testing"

func TestRoleFromEmail(t *testing.T) {
	tests := []struct {
		email    string
		wantRole Role
		wantErr  bool
	}{
		{"alice@patients.com", RolePatient, false},
		{"bob@doctors.com", RoleDoctor, false},
		{"carol@admin.com", RoleAdmin, false},
		{"dave@example.com", "", true},
		{"", "", true},
		{"patients.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			role, err := RoleFromEmail(tt.email)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if KindOf(err) != KindInvalidArgument {
					t.Errorf("expected invalid_argument, got %v", KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if role != tt.wantRole {
				t.Errorf("expected %s, got %s", tt.wantRole, role)
			}
		})
	}
}
