package domain

import (
	"context"
	"reflect"
	"testing"
)

func TestRolesFor(t *testing.T) {
	cases := []struct {
		roleID int
		want   []string
	}{
		{1, []string{"USER"}},
		{2, []string{"ADMIN"}},
		{0, []string{}},
		{3, []string{}},
		{-1, []string{}},
	}
	for _, tc := range cases {
		set := RolesFor(tc.roleID)
		if set == nil {
			t.Fatalf("RolesFor(%d) returned nil", tc.roleID)
		}
		if got := set.Names(); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("RolesFor(%d) = %v, want %v", tc.roleID, got, tc.want)
		}
	}
}

func TestSecurityContext_IsUserInRole(t *testing.T) {
	admin := NewSecurityContext(&User{ID: 9, Email: "root@x.com", RoleID: 2}, SchemeBearer, true)

	if !admin.IsUserInRole("ADMIN") {
		t.Fatal("expected ADMIN")
	}
	for _, r := range []string{"USER", "admin", "Admin", ""} {
		if admin.IsUserInRole(r) {
			t.Errorf("IsUserInRole(%q) must be false", r)
		}
	}
	if admin.Principal != "root@x.com" || admin.UserID != 9 || !admin.Secure {
		t.Fatalf("unexpected context: %+v", admin)
	}

	var none *SecurityContext
	if none.IsUserInRole("ADMIN") {
		t.Fatal("nil context holds no roles")
	}
}

func TestSecurityContext_RequestContext(t *testing.T) {
	if _, ok := SecurityFromContext(context.Background()); ok {
		t.Fatal("empty context must carry no security context")
	}

	sc := NewSecurityContext(&User{ID: 7, Email: "a@x.com", RoleID: 1}, SchemeBasic, false)
	got, ok := SecurityFromContext(ContextWithSecurity(context.Background(), sc))
	if !ok || got != sc {
		t.Fatalf("round trip lost the context: %v %v", got, ok)
	}
}

func TestUser_HoldsToken(t *testing.T) {
	u := &User{CurrentToken: "abc"}
	if !u.HoldsToken("abc") || u.HoldsToken("abd") || u.HoldsToken("") {
		t.Fatal("unexpected HoldsToken result")
	}
	if (&User{}).HoldsToken("") {
		t.Fatal("an empty token never matches")
	}
}
