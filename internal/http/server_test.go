package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/citycat/adoption-engine/internal/domain"
	"github.com/citycat/adoption-engine/internal/matching"
	"github.com/citycat/adoption-engine/internal/scoring"
)

func newTestServer(cats []domain.CatProfile, flags []domain.FeatureFlag, affs []domain.Affiliation) *httptest.Server {
	srv := NewServer(
		scoring.NewEngine(scoring.DefaultWeights()),
		matching.NewEngine(),
		NewMemRepos(cats, flags, affs).Bundle(),
		nil,
	)
	return httptest.NewServer(srv.Routes())
}

func postJSON(t *testing.T, url string, payload any, out any) int {
	t.Helper()
	b, _ := json.Marshal(payload)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestPOSTScore(t *testing.T) {
	t.Parallel()

	ts := newTestServer(nil, nil, nil)
	defer ts.Close()

	req := ScoreRequest{
		Application: domain.AdoptionApplication{
			HousingType:   domain.HousingApartment,
			HousingArea:   domain.AreaSmall,
			CatExperience: domain.ExperienceNone,
			AbsenceHours:  11,
		},
	}

	var got ScoreResponse
	if status := postJSON(t, ts.URL+"/score", req, &got); status != http.StatusOK {
		t.Fatalf("POST /score status=%d", status)
	}
	if got.Total >= 50 {
		t.Fatalf("total=%d want < 50", got.Total)
	}
	if got.Tier != scoring.TierLow {
		t.Fatalf("tier=%q want=%q", got.Tier, scoring.TierLow)
	}
	if len(got.Criteria) != 5 {
		t.Fatalf("criteria=%d want=5", len(got.Criteria))
	}
}

func TestPOSTMatch_RanksAdoptableCats(t *testing.T) {
	t.Parallel()

	cats := []domain.CatProfile{
		{ID: "low", Status: domain.StatusAdoption,
			Behavioral: &domain.BehavioralProfile{AloneToleranceHours: 1}},
		{ID: "adopted", Status: domain.StatusAdopted},
		{ID: "high", Status: domain.StatusAdoption,
			Behavioral: &domain.BehavioralProfile{AloneToleranceHours: 9}},
	}
	ts := newTestServer(cats, nil, nil)
	defer ts.Close()

	var got MatchResponse
	status := postJSON(t, ts.URL+"/match", MatchRequest{
		Answers: domain.LifestyleAnswers{HoursAway: 7},
	}, &got)
	if status != http.StatusOK {
		t.Fatalf("POST /match status=%d", status)
	}

	if len(got.Results) != 2 {
		t.Fatalf("results=%d want=2 (adopted cat must be excluded)", len(got.Results))
	}
	if got.Results[0].Cat.ID != "high" || got.Results[1].Cat.ID != "low" {
		t.Fatalf("order=%s,%s want=high,low", got.Results[0].Cat.ID, got.Results[1].Cat.ID)
	}
	for _, r := range got.Results {
		if r.Score < 5 || r.Score > 98 {
			t.Fatalf("score %f outside [5,98]", r.Score)
		}
	}
}

func TestCatsCRUDAndHeartTriggers(t *testing.T) {
	t.Parallel()

	ts := newTestServer(nil, nil, nil)
	defer ts.Close()

	arrival := time.Now().AddDate(0, -8, 0)
	cat := domain.CatProfile{
		Name:         "Baron",
		Age:          11,
		HealthStatus: domain.HealthChronic,
		HealthNotes:  "FIV positive",
		Status:       domain.StatusAdoption,
		ArrivalDate:  &arrival,
	}

	var created domain.CatProfile
	if status := postJSON(t, ts.URL+"/cats", cat, &created); status != http.StatusCreated {
		t.Fatalf("POST /cats status=%d", status)
	}
	if created.ID == "" {
		t.Fatal("created cat has empty id")
	}

	resp, err := http.Get(ts.URL + "/cats/" + created.ID + "/heart-triggers")
	if err != nil {
		t.Fatalf("GET heart-triggers: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET heart-triggers status=%d", resp.StatusCode)
	}

	var triggers HeartTriggersResponse
	if err := json.NewDecoder(resp.Body).Decode(&triggers); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"elderly", "chronic", "fiv", "longStay"}
	if len(triggers.Triggers) != len(want) {
		t.Fatalf("triggers=%v want=%v", triggers.Triggers, want)
	}
	for i, code := range want {
		if triggers.Triggers[i] != code {
			t.Fatalf("triggers[%d]=%q want=%q", i, triggers.Triggers[i], code)
		}
	}

	// delete and verify 404 on re-read
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/cats/"+created.ID, nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE /cats/{id}: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusOK {
		t.Fatalf("DELETE status=%d", delResp.StatusCode)
	}

	getResp, err := http.Get(ts.URL + "/cats/" + created.ID)
	if err != nil {
		t.Fatalf("GET /cats/{id}: %v", err)
	}
	getResp.Body.Close()
	if getResp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status=%d want=404", getResp.StatusCode)
	}
}

func TestApplicationsRoundTrip(t *testing.T) {
	t.Parallel()

	ts := newTestServer(nil, nil, nil)
	defer ts.Close()

	app := domain.AdoptionApplication{
		ApplicantEmail: "marta@example.org",
		HousingType:    domain.HousingHouseGarden,
		HousingArea:    domain.AreaLarge,
		HasGarden:      true,
		AdultsCount:    2,
		OtherAnimals:   domain.OtherAnimalsNone,
		AbsenceHours:   4,
		CatExperience:  domain.ExperienceFostered,
	}

	var created ApplicationResponse
	if status := postJSON(t, ts.URL+"/applications", app, &created); status != http.StatusCreated {
		t.Fatalf("POST /applications status=%d", status)
	}
	if created.Application.ID == "" {
		t.Fatal("saved application has empty id")
	}
	if created.Scoring.Tier != scoring.TierGood {
		t.Fatalf("tier=%q want=%q", created.Scoring.Tier, scoring.TierGood)
	}

	resp, err := http.Get(ts.URL + "/applications/" + created.Application.ID)
	if err != nil {
		t.Fatalf("GET /applications/{id}: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /applications/{id} status=%d", resp.StatusCode)
	}

	var got ApplicationResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Application.ApplicantEmail != app.ApplicantEmail {
		t.Fatalf("email=%q want=%q", got.Application.ApplicantEmail, app.ApplicantEmail)
	}
	if got.Scoring.Total != created.Scoring.Total {
		t.Fatalf("re-read total=%d want=%d", got.Scoring.Total, created.Scoring.Total)
	}

	// missing email is rejected before anything is stored
	bad := domain.AdoptionApplication{HousingType: domain.HousingApartment}
	if status := postJSON(t, ts.URL+"/applications", bad, nil); status != http.StatusBadRequest {
		t.Fatalf("POST without email status=%d want=400", status)
	}

	missing, err := http.Get(ts.URL + "/applications/no-such-id")
	if err != nil {
		t.Fatalf("GET missing application: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("GET missing application status=%d want=404", missing.StatusCode)
	}
}

func TestPOSTNavFilter(t *testing.T) {
	t.Parallel()

	flags := []domain.FeatureFlag{
		{Role: domain.RoleShelter, LabelKey: "nav.campaigns", Enabled: false},
	}
	ts := newTestServer(nil, flags, nil)
	defer ts.Close()

	items := []domain.NavItem{
		{LabelKey: "nav.dashboard", Path: "/dashboard"},
		{LabelKey: "nav.campaigns", Path: "/campaigns"},
	}

	// flags omitted in the body → loaded from the flag store
	var got NavFilterResponse
	if status := postJSON(t, ts.URL+"/nav/filter", NavFilterRequest{Role: domain.RoleShelter, Items: items}, &got); status != http.StatusOK {
		t.Fatalf("POST /nav/filter status=%d", status)
	}
	if len(got.Items) != 1 || got.Items[0].Path != "/dashboard" {
		t.Fatalf("items=%v want only /dashboard", got.Items)
	}

	// admin sees everything regardless
	if status := postJSON(t, ts.URL+"/nav/filter", NavFilterRequest{Role: domain.RoleAdmin, Items: items}, &got); status != http.StatusOK {
		t.Fatalf("POST /nav/filter (admin) status=%d", status)
	}
	if len(got.Items) != 2 {
		t.Fatalf("admin items=%d want=2", len(got.Items))
	}
}

func TestPOSTPermissionsResolve(t *testing.T) {
	t.Parallel()

	affs := []domain.Affiliation{
		{ID: "a1", UserEmail: "marta@example.org", Status: domain.AffiliationAccepted,
			Permissions: []domain.Permission{domain.PermEditCats}},
		{ID: "a2", UserEmail: "marta@example.org", Status: domain.AffiliationPending,
			Permissions: []domain.Permission{domain.PermManageCampaigns}},
	}
	ts := newTestServer(nil, nil, affs)
	defer ts.Close()

	var got PermissionsResponse
	status := postJSON(t, ts.URL+"/permissions/resolve", PermissionsRequest{
		User: domain.User{Email: "marta@example.org", Role: domain.RoleAdopter},
	}, &got)
	if status != http.StatusOK {
		t.Fatalf("POST /permissions/resolve status=%d", status)
	}
	if len(got.Permissions) != 1 || got.Permissions[0] != domain.PermEditCats {
		t.Fatalf("permissions=%v want=[edit_cats]", got.Permissions)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ts := newTestServer(nil, nil, nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /health status=%d", resp.StatusCode)
	}
}
