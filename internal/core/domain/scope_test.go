package domain

import "testing"

func TestScopeForUser(t *testing.T) {
	tests := []struct {
		name         string
		user         *User
		unrestricted bool
		ownerID      string
	}{
		{
			name:         "admin sees everything",
			user:         &User{ID: "u1", Role: RoleAdmin},
			unrestricted: true,
		},
		{
			name:    "regular user pinned to own records",
			user:    &User{ID: "u2", Role: RoleUser},
			ownerID: "u2",
		},
		{
			name:    "unknown role falls back to most restrictive",
			user:    &User{ID: "u3", Role: Role("superuser")},
			ownerID: "u3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := ScopeForUser(tt.user)
			if scope.IsUnrestricted() != tt.unrestricted {
				t.Fatalf("IsUnrestricted = %v, want %v", scope.IsUnrestricted(), tt.unrestricted)
			}
			if scope.OwnerID() != tt.ownerID {
				t.Fatalf("OwnerID = %q, want %q", scope.OwnerID(), tt.ownerID)
			}
		})
	}
}

func TestScopeAllows(t *testing.T) {
	if !Unrestricted().Allows("anyone") {
		t.Fatalf("unrestricted scope must allow every owner")
	}
	scoped := OwnedBy("u1")
	if !scoped.Allows("u1") {
		t.Fatalf("owned scope must allow its own records")
	}
	if scoped.Allows("u2") {
		t.Fatalf("owned scope must not allow other owners")
	}
}

func TestLeadStatusValid(t *testing.T) {
	for _, status := range AllLeadStatuses {
		if !status.Valid() {
			t.Fatalf("status %q should be valid", status)
		}
	}
	if LeadStatus("Pending").Valid() {
		t.Fatalf("unknown status should be invalid")
	}
	if LeadStatus("new").Valid() {
		t.Fatalf("status matching is case-sensitive")
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleAdmin.Valid() || !RoleUser.Valid() {
		t.Fatalf("known roles should be valid")
	}
	if Role("root").Valid() {
		t.Fatalf("unknown role should be invalid")
	}
}
