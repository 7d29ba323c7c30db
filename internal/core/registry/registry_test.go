package registry

import (
	"errors"
	"testing"
	"time"

	"github.com/example/projstate/internal/core/record"
	"github.com/example/projstate/internal/models"
)

var testNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func testInput(counts models.GitCounts) MergeInput {
	return MergeInput{
		ProjectID:   "demo-app",
		ProjectName: "demo.app",
		ProjectType: "generic",
		Branch:      "main",
		Counts:      counts,
		Now:         testNow,
	}
}

func TestDefault(t *testing.T) {
	r := Default(`/home/dev/"quoted"`)
	if got := r.Get("metadata.version").String(); got != RegistryVersion {
		t.Errorf("version = %q", got)
	}
	if got := r.Get("metadata.projectRoot").String(); got != `/home/dev/"quoted"` {
		t.Errorf("projectRoot = %q", got)
	}
}

func TestBase_Malformed(t *testing.T) {
	_, err := Base([]byte("{{{"), true, false, "/repo")
	if !errors.Is(err, record.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}

	r, err := Base([]byte("{{{"), true, true, "/repo")
	if err != nil {
		t.Fatalf("rotation should ignore prior content, got %v", err)
	}
	if !r.Get("_archive_note").Exists() {
		t.Error("expected fresh record to carry the archive note")
	}
}

func TestMerge_CreatesEntry(t *testing.T) {
	counts := models.GitCounts{Modified: 2, Added: 1, Deleted: 0}

	r, err := Merge(Default("/repo"), testInput(counts))
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	projects := r.Get("projects").Array()
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}

	entry, found := Lookup(r, "demo-app")
	if !found {
		t.Fatal("expected demo-app entry")
	}
	if entry.Name != "demo.app" || entry.Type != "generic" {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Created != "10/18/2026" || entry.LastUpdated != "10/18/2026" {
		t.Errorf("unexpected dates: created=%q lastUpdated=%q", entry.Created, entry.LastUpdated)
	}
	if entry.GitStatus != counts {
		t.Errorf("gitStatus = %+v, want %+v", entry.GitStatus, counts)
	}
	if got := r.Get("metadata.gitBranch").String(); got != "main" {
		t.Errorf("gitBranch = %q", got)
	}
	if got := r.Get("metadata.projectRoot").String(); got != "/repo" {
		t.Errorf("expected default metadata kept, got projectRoot %q", got)
	}
}

func TestMerge_UpdatesEntryInPlace(t *testing.T) {
	prior := record.MustParse(`{
  "projects": [
    {"id": "other", "name": "other"},
    {"id": "demo-app", "name": "demo.app", "created": "1/1/2025", "lastUpdated": "1/2/2025",
     "gitStatus": {"modified": 9, "added": 9, "deleted": 9}, "notes": "keep me"}
  ],
  "metadata": {"version": "1.0.0"}
}`)

	counts := models.GitCounts{Modified: 1, Added: 0, Deleted: 3}
	r, err := Merge(prior, testInput(counts))
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if got := len(r.Get("projects").Array()); got != 2 {
		t.Fatalf("expected 2 projects, got %d", got)
	}
	entry, found := Lookup(r, "demo-app")
	if !found {
		t.Fatal("expected demo-app entry")
	}
	if entry.Created != "1/1/2025" {
		t.Errorf("expected created date kept, got %q", entry.Created)
	}
	if entry.LastUpdated != "10/18/2026" {
		t.Errorf("expected lastUpdated refreshed, got %q", entry.LastUpdated)
	}
	if entry.GitStatus != counts {
		t.Errorf("gitStatus = %+v, want %+v", entry.GitStatus, counts)
	}
	if got := r.Get("projects.1.notes").String(); got != "keep me" {
		t.Errorf("expected extra entry fields preserved, got %q", got)
	}
}

func TestMerge_TwiceKeepsSingleEntry(t *testing.T) {
	counts := models.GitCounts{Modified: 2, Added: 1}

	first, err := Merge(Default("/repo"), testInput(counts))
	if err != nil {
		t.Fatalf("first Merge failed: %v", err)
	}
	second, err := Merge(first, testInput(counts))
	if err != nil {
		t.Fatalf("second Merge failed: %v", err)
	}

	if got := len(second.Get("projects").Array()); got != 1 {
		t.Errorf("expected 1 project after two merges, got %d", got)
	}
}

func TestMerge_FreshRecordWithoutMetadataFields(t *testing.T) {
	r, err := Merge(Fresh(), testInput(models.GitCounts{}))
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if got := r.Get("metadata.projectName").String(); got != "demo.app" {
		t.Errorf("projectName = %q", got)
	}
	if got := r.Get("_archive_note").String(); got != "For archived projects, see ./docs/project/projects-logs/" {
		t.Errorf("_archive_note = %q", got)
	}
}

func TestMerge_RepairsNonArrayProjects(t *testing.T) {
	r, err := Merge(record.MustParse(`{"projects": {"oops": true}}`), testInput(models.GitCounts{}))
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if got := len(r.Get("projects").Array()); got != 1 {
		t.Errorf("expected a single entry, got %d", got)
	}
}

func TestLookup_Missing(t *testing.T) {
	if _, found := Lookup(Default("/repo"), "nope"); found {
		t.Error("expected not found")
	}
}

func TestLookup_NonStringFields(t *testing.T) {
	r := record.MustParse(`{"projects": [
  {"id": "001", "name": "legacy", "created": 1700000000000, "lastUpdated": null}
]}`)

	entry, found := Lookup(r, "001")
	if !found {
		t.Fatal("expected entry for 001")
	}
	if entry.Created != "1700000000000" {
		t.Errorf("created = %q, want the number as written", entry.Created)
	}
	if entry.LastUpdated != "" {
		t.Errorf("lastUpdated = %q, want empty", entry.LastUpdated)
	}
	if entry.HasGitStatus {
		t.Error("expected no gitStatus")
	}
}
