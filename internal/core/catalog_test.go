package core

import (
	"reflect"
	"testing"

	"archcore/pkg/domain"
)

func TestCatalogSerialPrefixes(t *testing.T) {
	s := NewStore()

	cases := []struct {
		name string
		add  func() string
		want string
	}{
		{"vendor", func() string { return s.AddVendor(domain.Vendor{Name: "SAP"}).ID }, "VND-001"},
		{"entity", func() string { return s.AddEntity(domain.LegalEntity{Name: "Holding"}).ID }, "ENT-001"},
		{"demand", func() string { return s.AddDemand(domain.Demand{Title: "New CRM"}).ID }, "DEM-001"},
		{"integration", func() string { return s.AddIntegration(domain.Integration{Protocol: "sftp"}).ID }, "INT-001"},
		{"dataObject", func() string { return s.AddDataObject(domain.DataObject{Name: "Customer"}).ID }, "DO-001"},
		{"process", func() string { return s.AddProcess(domain.E2EProcess{Name: "Order to Cash"}).ID }, "PROC-001"},
		{"kpi", func() string { return s.AddManagementKPI(domain.ManagementKPI{Name: "Cloud Share"}).ID }, "KPI-001"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.add(); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestVendorUpdatePreservesID(t *testing.T) {
	s := NewStore()
	v := s.AddVendor(domain.Vendor{Name: "SAP", Criticality: "high"})

	updated, ok := s.UpdateVendor(v.ID, func(v *domain.Vendor) {
		v.ID = "VND-999"
		v.Status = "active"
	})
	if !ok {
		t.Fatalf("expected update to succeed")
	}
	if updated.ID != v.ID {
		t.Fatalf("id must not be reassignable, got %s", updated.ID)
	}
	if updated.Status != "active" || updated.Criticality != "high" {
		t.Fatalf("unexpected vendor after update: %+v", updated)
	}

	if _, ok := s.UpdateVendor("VND-404", func(*domain.Vendor) {}); ok {
		t.Fatalf("expected update of unknown vendor to fail")
	}
}

func TestDeleteCatalogRecordsLeaveReferencesDangling(t *testing.T) {
	s := NewStore()
	v := s.AddVendor(domain.Vendor{Name: "SAP"})
	app := s.AddApp(domain.Application{Name: "Billing", Vendor: v.Name})

	s.DeleteVendor(v.ID)

	if _, ok := s.VendorByID(v.ID); ok {
		t.Fatalf("vendor should be gone")
	}
	// Catalog deletes do not cascade; readers degrade the stale link.
	got, _ := s.AppByID(app.ID)
	if got.Vendor != "SAP" {
		t.Fatalf("app vendor field should be untouched, got %q", got.Vendor)
	}
	links := s.VendorLinksForApp(app.ID)
	if len(links) != 1 || links[0].Vendor != nil {
		t.Fatalf("dangling vendor link should keep the name but resolve no record, got %+v", links)
	}
	if links[0].VendorName != "SAP" || links[0].Role != "Hersteller" {
		t.Fatalf("unexpected synthesized link %+v", links[0])
	}
	if _, ok := s.PrimaryVendorForApp(app.ID); ok {
		t.Fatalf("primary vendor should not resolve once the record is gone")
	}
}

func TestProcessDomainsSurviveUnrelatedDomainDelete(t *testing.T) {
	s := fixtureStore(t)

	s.AddDomain(domain.Domain{Name: "Logistics"})
	p, _ := s.ProcessByID("PROC-001")
	if !reflect.DeepEqual(p.Domains, []int{1, 2}) {
		t.Fatalf("unexpected process domains %v", p.Domains)
	}

	s.DeleteDomain(3)

	p, _ = s.ProcessByID("PROC-001")
	if !reflect.DeepEqual(p.Domains, []int{1, 2}) {
		t.Fatalf("unrelated delete must not touch process domains, got %v", p.Domains)
	}
}

func TestDemandDefaultsAndDelete(t *testing.T) {
	s := NewStore()
	d := s.AddDemand(domain.Demand{Title: "Rollout", PrimaryDomain: intp(2)})

	got, ok := s.DemandByID(d.ID)
	if !ok || got.Title != "Rollout" || *got.PrimaryDomain != 2 {
		t.Fatalf("unexpected demand %+v ok=%v", got, ok)
	}

	s.DeleteDemand(d.ID)
	if _, ok := s.DemandByID(d.ID); ok {
		t.Fatalf("demand should be gone")
	}
	// Deleting twice is a silent no-op.
	s.DeleteDemand(d.ID)
}
