package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
)

type leadFixture struct {
	customers *stubCustomerRepo
	leads     *stubLeadRepo
	cache     *stubStatsCache
	svc       *LeadService
}

func newLeadFixture() *leadFixture {
	customers := newStubCustomerRepo()
	leads := newStubLeadRepo()
	cache := newStubStatsCache()
	return &leadFixture{
		customers: customers,
		leads:     leads,
		cache:     cache,
		svc:       NewLeadService(leads, customers, cache, zerolog.Nop()),
	}
}

func (f *leadFixture) addCustomer(id, ownerID string) {
	f.customers.customers[id] = &domain.Customer{
		ID: id, Name: "c-" + id, OwnerID: ownerID, CreatedAt: time.Now().UTC(),
	}
}

func TestLeadService_Create(t *testing.T) {
	f := newLeadFixture()
	f.addCustomer("c1", testUserA.ID)

	lead, err := f.svc.Create(context.Background(), testUserA, "c1", ports.CreateLeadInput{
		Title: "Deal", Value: 1000,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if lead.Status != domain.LeadStatusNew {
		t.Fatalf("empty status should default to New, got %s", lead.Status)
	}
	if lead.CustomerID != "c1" {
		t.Fatalf("unexpected customer id: %s", lead.CustomerID)
	}
}

func TestLeadService_Create_ForeignParentIsAbsent(t *testing.T) {
	f := newLeadFixture()
	f.addCustomer("c1", testUserB.ID)

	// User A cannot attach a lead to B's customer; the parent reads as
	// missing, not forbidden.
	_, err := f.svc.Create(context.Background(), testUserA, "c1", ports.CreateLeadInput{Title: "Deal"})
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}

	// Admin can.
	if _, err := f.svc.Create(context.Background(), testAdmin, "c1", ports.CreateLeadInput{Title: "Deal"}); err != nil {
		t.Fatalf("admin create failed: %v", err)
	}
}

func TestLeadService_Create_InvalidStatus(t *testing.T) {
	f := newLeadFixture()
	f.addCustomer("c1", testUserA.ID)

	_, err := f.svc.Create(context.Background(), testUserA, "c1", ports.CreateLeadInput{
		Title: "Deal", Status: domain.LeadStatus("Pending"),
	})
	if !errors.Is(err, domain.ErrInvalidLeadStatus) {
		t.Fatalf("expected ErrInvalidLeadStatus, got %v", err)
	}
}

func TestLeadService_ListByCustomer_ChecksParentFirst(t *testing.T) {
	f := newLeadFixture()
	f.addCustomer("c1", testUserB.ID)
	f.leads.leads["l1"] = &domain.Lead{ID: "l1", CustomerID: "c1", Status: domain.LeadStatusNew}

	if _, err := f.svc.ListByCustomer(context.Background(), testUserA, "c1", ""); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}

	leads, err := f.svc.ListByCustomer(context.Background(), testUserB, "c1", "")
	if err != nil {
		t.Fatalf("owner list failed: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(leads))
	}
}

func TestLeadService_List_ScopedThroughParents(t *testing.T) {
	f := newLeadFixture()
	f.addCustomer("ca", testUserA.ID)
	f.addCustomer("cb", testUserB.ID)
	f.leads.leads["l1"] = &domain.Lead{ID: "l1", CustomerID: "ca", Status: domain.LeadStatusNew}
	f.leads.leads["l2"] = &domain.Lead{ID: "l2", CustomerID: "cb", Status: domain.LeadStatusNew}
	f.leads.leads["l3"] = &domain.Lead{ID: "l3", CustomerID: "cb", Status: domain.LeadStatusLost}

	adminLeads, err := f.svc.List(context.Background(), testAdmin, "")
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(adminLeads) != 3 {
		t.Fatalf("admin should see 3 leads, got %d", len(adminLeads))
	}

	aLeads, err := f.svc.List(context.Background(), testUserA, "")
	if err != nil {
		t.Fatalf("user A list failed: %v", err)
	}
	if len(aLeads) != 1 || aLeads[0].ID != "l1" {
		t.Fatalf("user A should see only l1, got %+v", aLeads)
	}

	filtered, err := f.svc.List(context.Background(), testUserB, domain.LeadStatusLost)
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != "l3" {
		t.Fatalf("status filter should keep only l3, got %+v", filtered)
	}
}

func TestLeadService_List_NoCustomersIsEmptyNotAll(t *testing.T) {
	f := newLeadFixture()
	f.addCustomer("cb", testUserB.ID)
	f.leads.leads["l1"] = &domain.Lead{ID: "l1", CustomerID: "cb", Status: domain.LeadStatusNew}

	// User A owns nothing: the query runs against an explicit empty set
	// and must not widen to everything.
	leads, err := f.svc.List(context.Background(), testUserA, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(leads) != 0 {
		t.Fatalf("expected no leads, got %d", len(leads))
	}
}

func TestLeadService_Update_ForeignParentReportsLeadMissing(t *testing.T) {
	f := newLeadFixture()
	f.addCustomer("cb", testUserB.ID)
	f.leads.leads["l1"] = &domain.Lead{ID: "l1", CustomerID: "cb", Status: domain.LeadStatusNew}

	title := "Renamed"
	_, err := f.svc.Update(context.Background(), testUserA, "l1", ports.LeadUpdate{Title: &title})
	if !errors.Is(err, domain.ErrLeadNotFound) {
		t.Fatalf("foreign lead must read as missing, got %v", err)
	}

	// Same answer as for a lead that does not exist at all.
	_, errMissing := f.svc.Update(context.Background(), testUserA, "no-such-lead", ports.LeadUpdate{Title: &title})
	if !errors.Is(errMissing, domain.ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", errMissing)
	}

	updated, err := f.svc.Update(context.Background(), testUserB, "l1", ports.LeadUpdate{Title: &title})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("expected renamed lead, got %q", updated.Title)
	}
}

func TestLeadService_Update_InvalidStatusRejectedBeforeLookup(t *testing.T) {
	f := newLeadFixture()

	bad := domain.LeadStatus("Pending")
	_, err := f.svc.Update(context.Background(), testUserA, "whatever", ports.LeadUpdate{Status: &bad})
	if !errors.Is(err, domain.ErrInvalidLeadStatus) {
		t.Fatalf("expected ErrInvalidLeadStatus, got %v", err)
	}
}

func TestLeadService_Delete(t *testing.T) {
	f := newLeadFixture()
	f.addCustomer("ca", testUserA.ID)
	f.leads.leads["l1"] = &domain.Lead{ID: "l1", CustomerID: "ca", Status: domain.LeadStatusNew}

	if err := f.svc.Delete(context.Background(), testUserB, "l1"); !errors.Is(err, domain.ErrLeadNotFound) {
		t.Fatalf("foreign delete must read as missing, got %v", err)
	}

	if err := f.svc.Delete(context.Background(), testUserA, "l1"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if len(f.leads.leads) != 0 {
		t.Fatalf("lead should be gone")
	}
}
