package cafeclient

import "testing"

func TestCapabilitiesForGuest(t *testing.T) {
	client := newTestClient(t)
	caps := client.Capabilities()

	if caps.Role() != RoleGuest {
		t.Fatalf("Role = %q, want guest", caps.Role())
	}
	if caps.Elevated() || caps.CanManageMenu() || caps.CanManageUsers() || caps.CanCreateAdmins() {
		t.Fatal("guest granted elevated capabilities")
	}
	if caps.IsOwner("42") || caps.CanDeleteContent("42") {
		t.Fatal("guest granted ownership")
	}
}

func TestCapabilitiesForUser(t *testing.T) {
	client := newTestClient(t)
	loginAs(t, client, RoleUser)
	caps := client.Capabilities()

	if caps.Role() != RoleUser {
		t.Fatalf("Role = %q", caps.Role())
	}
	if caps.Elevated() {
		t.Fatal("user role reported elevated")
	}
	if !caps.IsOwner("42") {
		t.Fatal("session not owner of its own account")
	}
	if caps.IsOwner("7") {
		t.Fatal("session owner of someone else's account")
	}
	// Authors may delete their own content and nothing else.
	if !caps.CanDeleteContent("42") || caps.CanDeleteContent("7") {
		t.Fatal("wrong content-deletion capability for user role")
	}
}

func TestCapabilitiesForAdmin(t *testing.T) {
	client := newTestClient(t)
	loginAs(t, client, RoleAdmin)
	caps := client.Capabilities()

	if !caps.Elevated() || !caps.CanManageMenu() || !caps.CanManageUsers() {
		t.Fatal("admin missing elevated capabilities")
	}
	if !caps.CanDeleteContent("7") {
		t.Fatal("admin cannot delete others' content")
	}
	if caps.CanCreateAdmins() {
		t.Fatal("admin can create admins; that is reserved for root")
	}
}

func TestCapabilitiesForRoot(t *testing.T) {
	client := newTestClient(t)
	loginAs(t, client, RoleRoot)
	caps := client.Capabilities()

	if !caps.Elevated() || !caps.CanCreateAdmins() {
		t.Fatal("root missing capabilities")
	}
}

func TestUnknownRoleCollapsesToGuest(t *testing.T) {
	client := newTestClient(t)
	loginAs(t, client, Role("superduperadmin"))
	caps := client.Capabilities()

	if caps.Role() != RoleGuest {
		t.Fatalf("Role = %q, want guest for unknown wire role", caps.Role())
	}
	if caps.Elevated() {
		t.Fatal("unknown role granted elevation")
	}
}
