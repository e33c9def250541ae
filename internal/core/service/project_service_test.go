package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/builderportfolio/portfolio-system/internal/core/domain"
	"github.com/builderportfolio/portfolio-system/internal/core/ports"
	"github.com/builderportfolio/portfolio-system/internal/infrastructure/memory"
)

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type projectFixture struct {
	ids      *memory.IdentityStore
	projects *memory.ProjectRepository
	builders *memory.RoleIndex
	managers *memory.RoleIndex
	svc      *ProjectService
}

func newProjectFixture() *projectFixture {
	f := &projectFixture{
		ids:      memory.NewIdentityStore(),
		projects: memory.NewProjectRepository(),
		builders: memory.NewRoleIndex(domain.RoleBuilder),
		managers: memory.NewRoleIndex(domain.RoleManager),
	}
	f.svc = NewProjectService(f.ids, f.projects, f.builders, f.managers, zerolog.Nop())
	return f
}

var (
	jan1  = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	dec31 = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
)

func bridgeInput(builderID, managerID string) ports.CreateProjectInput {
	return ports.CreateProjectInput{
		Name:        "Bridge",
		Description: "desc",
		StartDate:   jan1,
		EndDate:     dec31,
		Client:      ports.ClientInput{Name: "Client X", Email: "x@client.test", Phone: "9000000000"},
		Status:      domain.StatusUpcoming,
		BuilderID:   builderID,
		ManagerID:   managerID,
	}
}

func (f *projectFixture) mustCreate(t *testing.T, in ports.CreateProjectInput) *domain.Project {
	t.Helper()
	p, err := f.svc.CreateProject(in)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func containsProject(projects []domain.Project, id int64) bool {
	for _, p := range projects {
		if p.ID == id {
			return true
		}
	}
	return false
}

// failingIndex rejects every upsert.
type failingIndex struct {
	*memory.RoleIndex
}

func (failingIndex) UpsertProject(string, int64) error {
	return errors.New("index unavailable")
}

// ---------------------------------------------------------------------------
// End-to-end scenario
// ---------------------------------------------------------------------------

func TestProjectService_Lifecycle(t *testing.T) {
	f := newProjectFixture()
	f.managers.CreateEntry("P1")
	f.builders.CreateEntry("B1")

	project := f.mustCreate(t, bridgeInput("B1", "P1"))
	if project.ID != 1 {
		t.Fatalf("expected project id 1, got %d", project.ID)
	}
	if project.Status != domain.StatusUpcoming {
		t.Fatalf("expected status upcoming, got %s", project.Status)
	}
	if !containsProject(f.svc.BuilderProjects("B1"), 1) || !containsProject(f.svc.ManagerProjects("P1"), 1) {
		t.Fatal("project must be listed for both its builder and its manager")
	}

	if !f.svc.UpdateStatus("B1", 1, domain.StatusInProgress) {
		t.Fatal("owner builder status update should succeed")
	}
	got, _ := f.svc.FindProject(1)
	if got.Status != domain.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", got.Status)
	}

	if f.svc.UpdateStatus("B2", 1, domain.StatusCompleted) {
		t.Fatal("foreign builder status update must fail")
	}
	got, _ = f.svc.FindProject(1)
	if got.Status != domain.StatusInProgress {
		t.Fatalf("status must stay in_progress, got %s", got.Status)
	}

	if !f.svc.DeleteProject("P1", 1) {
		t.Fatal("owner manager delete should succeed")
	}
	if _, err := f.svc.FindProject(1); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound after delete, got %v", err)
	}
	if len(f.builders.ProjectsOf("B1")) != 0 || len(f.managers.ProjectsOf("P1")) != 0 {
		t.Fatal("both index lists must be empty after delete")
	}
}

// ---------------------------------------------------------------------------
// CreateProject
// ---------------------------------------------------------------------------

func TestProjectService_Create_AssignsIncreasingIDs(t *testing.T) {
	f := newProjectFixture()

	var prev int64
	for i := 0; i < 10; i++ {
		p := f.mustCreate(t, bridgeInput("B1", "P1"))
		if p.ID <= prev {
			t.Fatalf("project id %d not greater than %d", p.ID, prev)
		}
		if p.Client.ID != p.ID {
			t.Errorf("client sequence drifted: client %d, project %d", p.Client.ID, p.ID)
		}
		prev = p.ID
	}
}

func TestProjectService_Create_IndexesBothOwners(t *testing.T) {
	f := newProjectFixture()

	a := f.mustCreate(t, bridgeInput("B1", "P1"))
	b := f.mustCreate(t, bridgeInput("B2", "P1"))
	c := f.mustCreate(t, bridgeInput("B1", "P2"))

	cases := []struct {
		holder string
		role   domain.Role
		want   []int64
	}{
		{"B1", domain.RoleBuilder, []int64{a.ID, c.ID}},
		{"B2", domain.RoleBuilder, []int64{b.ID}},
		{"P1", domain.RoleManager, []int64{a.ID, b.ID}},
		{"P2", domain.RoleManager, []int64{c.ID}},
	}
	for _, tc := range cases {
		projects, err := f.svc.ListProjectsFor(tc.holder, tc.role)
		if err != nil {
			t.Fatalf("%s: %v", tc.holder, err)
		}
		if len(projects) != len(tc.want) {
			t.Fatalf("%s: expected %d projects, got %d", tc.holder, len(tc.want), len(projects))
		}
		for i, id := range tc.want {
			if projects[i].ID != id {
				t.Errorf("%s[%d]: expected project %d, got %d", tc.holder, i, id, projects[i].ID)
			}
		}
	}
}

func TestProjectService_Create_AutoCreatesUnknownHolders(t *testing.T) {
	f := newProjectFixture()

	f.mustCreate(t, bridgeInput("B7", "P7"))

	if !f.builders.Exists("B7") || !f.managers.Exists("P7") {
		t.Fatal("holders must be created on first reference")
	}
}

func TestProjectService_Create_DefaultsStatus(t *testing.T) {
	f := newProjectFixture()
	in := bridgeInput("B1", "P1")
	in.Status = ""

	if p := f.mustCreate(t, in); p.Status != domain.StatusUpcoming {
		t.Errorf("expected default status upcoming, got %s", p.Status)
	}
}

func TestProjectService_Create_SameDayAllowed(t *testing.T) {
	f := newProjectFixture()
	in := bridgeInput("B1", "P1")
	in.EndDate = in.StartDate

	f.mustCreate(t, in)
}

func TestProjectService_Create_InvalidInputHasNoSideEffects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ports.CreateProjectInput)
	}{
		{"empty name", func(in *ports.CreateProjectInput) { in.Name = "" }},
		{"empty builder", func(in *ports.CreateProjectInput) { in.BuilderID = "" }},
		{"empty manager", func(in *ports.CreateProjectInput) { in.ManagerID = "" }},
		{"missing client", func(in *ports.CreateProjectInput) { in.Client = ports.ClientInput{} }},
		{"client without email", func(in *ports.CreateProjectInput) { in.Client.Email = "" }},
		{"client without phone", func(in *ports.CreateProjectInput) { in.Client.Phone = "" }},
		{"missing start", func(in *ports.CreateProjectInput) { in.StartDate = time.Time{} }},
		{"missing end", func(in *ports.CreateProjectInput) { in.EndDate = time.Time{} }},
		{"end before start", func(in *ports.CreateProjectInput) { in.EndDate = in.StartDate.AddDate(0, 0, -1) }},
		{"unknown status", func(in *ports.CreateProjectInput) { in.Status = "paused" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newProjectFixture()
			in := bridgeInput("B1", "P1")
			tc.mutate(&in)

			_, err := f.svc.CreateProject(in)
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			if f.projects.Count() != 0 {
				t.Error("no project may be stored")
			}
			if f.builders.Exists("B1") || f.managers.Exists("P1") {
				t.Error("no index entry may be created")
			}
			if f.ids.NextID(domain.ScopeProject) != 1 || f.ids.NextID(domain.ScopeClient) != 1 {
				t.Error("no identifier may be consumed")
			}
		})
	}
}

func TestProjectService_Create_LinkFailureIsReported(t *testing.T) {
	ids := memory.NewIdentityStore()
	projects := memory.NewProjectRepository()
	builders := failingIndex{memory.NewRoleIndex(domain.RoleBuilder)}
	managers := memory.NewRoleIndex(domain.RoleManager)
	svc := NewProjectService(ids, projects, builders, managers, zerolog.Nop())

	if _, err := svc.CreateProject(bridgeInput("B1", "P1")); err == nil {
		t.Fatal("expected error when the builder index rejects the link")
	}
	// Earlier steps are not rolled back.
	if projects.Count() != 1 || len(managers.ProjectsOf("P1")) != 1 {
		t.Error("expected project and manager link to remain after a builder link failure")
	}
}

func TestProjectService_Create_Concurrent(t *testing.T) {
	f := newProjectFixture()
	const n = 100

	var wg sync.WaitGroup
	created := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := f.svc.CreateProject(bridgeInput("B1", "P1"))
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			created <- p.ID
		}()
	}
	wg.Wait()
	close(created)

	seen := make(map[int64]bool, n)
	for id := range created {
		if seen[id] {
			t.Fatalf("duplicate project id %d", id)
		}
		seen[id] = true
	}
	if got := len(f.svc.BuilderProjects("B1")); got != n {
		t.Errorf("builder: expected %d projects, got %d", n, got)
	}
	if got := len(f.svc.ManagerProjects("P1")); got != n {
		t.Errorf("manager: expected %d projects, got %d", n, got)
	}
}

// ---------------------------------------------------------------------------
// ListProjectsFor
// ---------------------------------------------------------------------------

func TestProjectService_List_UnknownHolderIsEmpty(t *testing.T) {
	f := newProjectFixture()
	projects, err := f.svc.ListProjectsFor("B404", domain.RoleBuilder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("expected no projects, got %d", len(projects))
	}
}

func TestProjectService_List_UnknownRole(t *testing.T) {
	f := newProjectFixture()
	if _, err := f.svc.ListProjectsFor("B1", domain.Role("client")); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestProjectService_List_SkipsStaleLinks(t *testing.T) {
	f := newProjectFixture()
	a := f.mustCreate(t, bridgeInput("B1", "P1"))
	b := f.mustCreate(t, bridgeInput("B1", "P1"))
	c := f.mustCreate(t, bridgeInput("B1", "P1"))

	// Remove behind the service's back; the indices still reference b.
	f.projects.Remove(b.ID)

	for _, role := range []domain.Role{domain.RoleBuilder, domain.RoleManager} {
		holder := "B1"
		if role == domain.RoleManager {
			holder = "P1"
		}
		projects, err := f.svc.ListProjectsFor(holder, role)
		if err != nil {
			t.Fatalf("%s: %v", role, err)
		}
		if len(projects) != 2 || projects[0].ID != a.ID || projects[1].ID != c.ID {
			t.Errorf("%s: expected [%d %d], got %+v", role, a.ID, c.ID, projects)
		}
	}
}

// ---------------------------------------------------------------------------
// UpdateStatus
// ---------------------------------------------------------------------------

func TestProjectService_UpdateStatus_AnyToAny(t *testing.T) {
	f := newProjectFixture()
	p := f.mustCreate(t, bridgeInput("B1", "P1"))

	for _, st := range []domain.ProjectStatus{domain.StatusCompleted, domain.StatusUpcoming, domain.StatusInProgress, domain.StatusInProgress} {
		if !f.svc.UpdateStatus("B1", p.ID, st) {
			t.Fatalf("transition to %s should succeed", st)
		}
		got, _ := f.svc.FindProject(p.ID)
		if got.Status != st {
			t.Fatalf("expected %s, got %s", st, got.Status)
		}
	}
}

func TestProjectService_UpdateStatus_Rejections(t *testing.T) {
	cases := []struct {
		name      string
		actor     string
		projectID int64
		status    domain.ProjectStatus
	}{
		{"other builder", "B2", 1, domain.StatusCompleted},
		{"project manager", "P1", 1, domain.StatusCompleted},
		{"empty actor", "", 1, domain.StatusCompleted},
		{"missing project", "B1", 99, domain.StatusCompleted},
		{"unknown status", "B1", 1, domain.ProjectStatus("archived")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newProjectFixture()
			f.mustCreate(t, bridgeInput("B1", "P1"))

			if f.svc.UpdateStatus(tc.actor, tc.projectID, tc.status) {
				t.Fatal("expected update to be rejected")
			}
			got, _ := f.svc.FindProject(1)
			if got.Status != domain.StatusUpcoming {
				t.Errorf("status changed to %s", got.Status)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// UpdateDetails
// ---------------------------------------------------------------------------

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestProjectService_UpdateDetails_Success(t *testing.T) {
	f := newProjectFixture()
	p := f.mustCreate(t, bridgeInput("B1", "P1"))

	ok, err := f.svc.UpdateDetails("P1", p.ID, ports.ProjectChanges{
		Name:        strPtr("Bridge v2"),
		Description: strPtr("widened deck"),
		EndDate:     timePtr(dec31.AddDate(0, 3, 0)),
		Client:      &ports.ClientInput{Name: "Client Y", Email: "y@client.test", Phone: "9111111111"},
	})
	if err != nil || !ok {
		t.Fatalf("expected success, got ok=%v err=%v", ok, err)
	}

	got, _ := f.svc.FindProject(p.ID)
	if got.Name != "Bridge v2" || got.Description != "widened deck" {
		t.Errorf("name/description not applied: %+v", got)
	}
	if !got.EndDate.Equal(dec31.AddDate(0, 3, 0)) || !got.StartDate.Equal(jan1) {
		t.Errorf("dates not applied: %v - %v", got.StartDate, got.EndDate)
	}
	if got.Client.Name != "Client Y" || got.Client.ID != p.Client.ID {
		t.Errorf("client not replaced in place: %+v", got.Client)
	}
	if got.BuilderID != "B1" || got.ManagerID != "P1" {
		t.Errorf("owners must not change: %s/%s", got.BuilderID, got.ManagerID)
	}
}

func TestProjectService_UpdateDetails_NotOwner(t *testing.T) {
	f := newProjectFixture()
	p := f.mustCreate(t, bridgeInput("B1", "P1"))

	for _, actor := range []string{"P2", "B1"} {
		ok, err := f.svc.UpdateDetails(actor, p.ID, ports.ProjectChanges{Name: strPtr("hijacked")})
		if ok || err != nil {
			t.Errorf("%s: expected (false, nil), got (%v, %v)", actor, ok, err)
		}
	}
	if ok, _ := f.svc.UpdateDetails("P1", 99, ports.ProjectChanges{}); ok {
		t.Error("missing project: expected false")
	}

	got, _ := f.svc.FindProject(p.ID)
	if got.Name != "Bridge" {
		t.Errorf("name changed to %q", got.Name)
	}
}

func TestProjectService_UpdateDetails_InvalidLeavesProjectUntouched(t *testing.T) {
	cases := []struct {
		name    string
		changes ports.ProjectChanges
	}{
		{"empty name", ports.ProjectChanges{Name: strPtr("")}},
		{"end before start", ports.ProjectChanges{Name: strPtr("renamed"), EndDate: timePtr(jan1.AddDate(0, 0, -1))}},
		{"start after end", ports.ProjectChanges{StartDate: timePtr(dec31.AddDate(0, 0, 1))}},
		{"client without phone", ports.ProjectChanges{Client: &ports.ClientInput{Name: "Z", Email: "z@client.test"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newProjectFixture()
			p := f.mustCreate(t, bridgeInput("B1", "P1"))

			ok, err := f.svc.UpdateDetails("P1", p.ID, tc.changes)
			if ok || !errors.Is(err, domain.ErrInvalidArgument) {
				t.Fatalf("expected (false, ErrInvalidArgument), got (%v, %v)", ok, err)
			}
			got, _ := f.svc.FindProject(p.ID)
			if got.Name != "Bridge" || !got.EndDate.Equal(dec31) || got.Client.Name != "Client X" {
				t.Errorf("project modified: %+v", got)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// DeleteProject
// ---------------------------------------------------------------------------

func TestProjectService_Delete_Rejections(t *testing.T) {
	f := newProjectFixture()
	p := f.mustCreate(t, bridgeInput("B1", "P1"))

	if f.svc.DeleteProject("P2", p.ID) {
		t.Error("foreign manager delete must fail")
	}
	if f.svc.DeleteProject("B1", p.ID) {
		t.Error("builder delete must fail")
	}
	if f.svc.DeleteProject("P1", 99) {
		t.Error("missing project delete must fail")
	}

	if _, err := f.svc.FindProject(p.ID); err != nil {
		t.Fatalf("project must survive rejected deletes: %v", err)
	}
	if len(f.builders.ProjectsOf("B1")) != 1 || len(f.managers.ProjectsOf("P1")) != 1 {
		t.Error("index links must survive rejected deletes")
	}
}

func TestProjectService_Delete_UnlinksStoredBuilderOnly(t *testing.T) {
	f := newProjectFixture()
	keep := f.mustCreate(t, bridgeInput("B2", "P1"))
	gone := f.mustCreate(t, bridgeInput("B1", "P1"))

	if !f.svc.DeleteProject("P1", gone.ID) {
		t.Fatal("delete should succeed")
	}

	if got := f.svc.BuilderProjects("B1"); len(got) != 0 {
		t.Errorf("B1 should have no projects, got %d", len(got))
	}
	if got := f.svc.BuilderProjects("B2"); len(got) != 1 || got[0].ID != keep.ID {
		t.Errorf("B2 should keep project %d, got %+v", keep.ID, got)
	}
	if got := f.svc.ManagerProjects("P1"); len(got) != 1 || got[0].ID != keep.ID {
		t.Errorf("P1 should keep project %d, got %+v", keep.ID, got)
	}
}

func TestProjectService_Delete_RemovesDuplicateLinks(t *testing.T) {
	f := newProjectFixture()
	p := f.mustCreate(t, bridgeInput("B1", "P1"))
	_ = f.builders.UpsertProject("B1", p.ID)
	_ = f.managers.UpsertProject("P1", p.ID)

	f.svc.DeleteProject("P1", p.ID)

	if len(f.builders.ProjectsOf("B1")) != 0 || len(f.managers.ProjectsOf("P1")) != 0 {
		t.Error("every occurrence of the project must be unlinked")
	}
}

func TestProjectService_Delete_IDsNotReused(t *testing.T) {
	f := newProjectFixture()
	first := f.mustCreate(t, bridgeInput("B1", "P1"))
	f.svc.DeleteProject("P1", first.ID)

	second := f.mustCreate(t, bridgeInput("B1", "P1"))
	if second.ID == first.ID {
		t.Fatalf("project id %d reused after delete", first.ID)
	}
}
