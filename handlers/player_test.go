// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mike-logic/scavenged/device"
	"github.com/mike-logic/scavenged/game"
	"github.com/mike-logic/scavenged/metrics"
	"github.com/mike-logic/scavenged/models"
	"github.com/mike-logic/scavenged/netctl"
	"github.com/mike-logic/scavenged/store"
	"github.com/mike-logic/scavenged/testutil"
)

func TestRegister(t *testing.T) {
	_, player, _, _ := setupHandlers(t)

	w := httptest.NewRecorder()
	player.Register(w, testutil.MakeRequest("POST", "/api/register", models.RegisterRequest{TeamName: "Foxes", Pin: "4242"}, nil))
	testutil.AssertStatus(t, w, 200)

	var resp models.AuthResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.OK || resp.TeamID == "" {
		t.Errorf("Unexpected response: %+v", resp)
	}

	// Same name again conflicts
	w = httptest.NewRecorder()
	player.Register(w, testutil.MakeRequest("POST", "/api/register", models.RegisterRequest{TeamName: "Foxes", Pin: "9999"}, nil))
	testutil.AssertStatus(t, w, 409)
	testutil.AssertErrorToken(t, w, "exists")

	// PIN too short
	w = httptest.NewRecorder()
	player.Register(w, testutil.MakeRequest("POST", "/api/register", models.RegisterRequest{TeamName: "Owls", Pin: "12"}, nil))
	testutil.AssertStatus(t, w, 400)
	testutil.AssertErrorToken(t, w, "bad_fields")

	// Name that sanitizes to nothing
	w = httptest.NewRecorder()
	player.Register(w, testutil.MakeRequest("POST", "/api/register", models.RegisterRequest{TeamName: "<<>>", Pin: "4242"}, nil))
	testutil.AssertStatus(t, w, 400)
	testutil.AssertErrorToken(t, w, "bad_fields")
}

func TestLogin(t *testing.T) {
	_, player, _, eng := setupHandlers(t)
	teamID := testutil.RegisterTeam(t, eng, "Foxes", "4242")

	w := httptest.NewRecorder()
	player.Login(w, testutil.MakeRequest("POST", "/api/login", models.LoginRequest{TeamName: "Foxes", Pin: "4242"}, nil))
	testutil.AssertStatus(t, w, 200)

	var resp models.AuthResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.TeamID != teamID {
		t.Errorf("Expected team ID %q, got %q", teamID, resp.TeamID)
	}

	// Wrong PIN and unknown name fail identically
	for _, req := range []models.LoginRequest{
		{TeamName: "Foxes", Pin: "0000"},
		{TeamName: "Nobody", Pin: "4242"},
	} {
		w = httptest.NewRecorder()
		player.Login(w, testutil.MakeRequest("POST", "/api/login", req, nil))
		testutil.AssertStatus(t, w, 403)
		testutil.AssertErrorToken(t, w, "auth")
	}
}

func TestItems_WithholdsCodewords(t *testing.T) {
	_, player, _, eng := setupHandlers(t)
	testutil.SaveCatalog(t, eng, []models.CheckpointInput{
		{Name: "Oak Tree", TokenText: "LEAF-42", Points: 10},
	})

	w := httptest.NewRecorder()
	player.Items(w, testutil.MakeRequest("GET", "/api/items", nil, nil))
	testutil.AssertStatus(t, w, 200)

	if strings.Contains(w.Body.String(), "LEAF-42") {
		t.Error("Public item listing leaked a codeword")
	}

	var resp models.ItemsResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(resp.Items))
	}
	if resp.Items[0].Name != "Oak Tree" || resp.Items[0].Points != 10 {
		t.Errorf("Unexpected item: %+v", resp.Items[0])
	}
}

func TestTeamItems(t *testing.T) {
	_, player, _, eng := setupHandlers(t)
	testutil.SaveCatalog(t, eng, []models.CheckpointInput{
		{Name: "Oak Tree", TokenText: "LEAF-42", Points: 10},
		{Name: "Fountain", TokenText: "SPLASH-7", Points: 5},
	})
	teamID := testutil.RegisterTeam(t, eng, "Foxes", "4242")

	if _, err := eng.SubmitCodeword(teamID, "LEAF-42"); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	player.TeamItems(w, testutil.MakeRequest("POST", "/api/team/items", models.TeamItemsRequest{TeamID: teamID}, nil))
	testutil.AssertStatus(t, w, 200)

	var resp models.TeamItemsResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(resp.Items))
	}
	for _, item := range resp.Items {
		want := item.Name == "Oak Tree"
		if item.Found != want {
			t.Errorf("Item %q found=%v, want %v", item.Name, item.Found, want)
		}
	}

	// Unknown team
	w = httptest.NewRecorder()
	player.TeamItems(w, testutil.MakeRequest("POST", "/api/team/items", models.TeamItemsRequest{TeamID: "T-missing"}, nil))
	testutil.AssertStatus(t, w, 404)
	testutil.AssertErrorToken(t, w, "team_not_found")
}

func TestSubmitCode(t *testing.T) {
	_, player, _, eng := setupHandlers(t)
	testutil.SaveCatalog(t, eng, []models.CheckpointInput{
		{Name: "Oak Tree", TokenText: "LEAF-42", Points: 10},
	})
	teamID := testutil.RegisterTeam(t, eng, "Foxes", "4242")

	// First submission awards
	w := httptest.NewRecorder()
	player.SubmitCode(w, testutil.MakeRequest("POST", "/api/team/submit_code", models.SubmitCodeRequest{TeamID: teamID, Token: "leaf-42"}, nil))
	testutil.AssertStatus(t, w, 200)

	var awarded models.SubmitCodeResponse
	testutil.AssertJSON(t, w, &awarded)
	if awarded.Awarded != 10 || awarded.Total != 10 {
		t.Errorf("Expected awarded=10 total=10, got %+v", awarded)
	}

	// Resubmission is a 200 with duplicate flag, not an error
	w = httptest.NewRecorder()
	player.SubmitCode(w, testutil.MakeRequest("POST", "/api/team/submit_code", models.SubmitCodeRequest{TeamID: teamID, Token: "LEAF-42"}, nil))
	testutil.AssertStatus(t, w, 200)

	var dup models.DuplicateResponse
	testutil.AssertJSON(t, w, &dup)
	if !dup.Duplicate || dup.Points != 10 {
		t.Errorf("Expected duplicate with points 10, got %+v", dup)
	}

	// Unknown codeword
	w = httptest.NewRecorder()
	player.SubmitCode(w, testutil.MakeRequest("POST", "/api/team/submit_code", models.SubmitCodeRequest{TeamID: teamID, Token: "NOPE-1"}, nil))
	testutil.AssertStatus(t, w, 404)
	testutil.AssertErrorToken(t, w, "no_match")

	// Empty token
	w = httptest.NewRecorder()
	player.SubmitCode(w, testutil.MakeRequest("POST", "/api/team/submit_code", models.SubmitCodeRequest{TeamID: teamID, Token: "   "}, nil))
	testutil.AssertStatus(t, w, 400)
	testutil.AssertErrorToken(t, w, "empty_token")

	// Unknown team
	w = httptest.NewRecorder()
	player.SubmitCode(w, testutil.MakeRequest("POST", "/api/team/submit_code", models.SubmitCodeRequest{TeamID: "T-missing", Token: "LEAF-42"}, nil))
	testutil.AssertStatus(t, w, 404)
	testutil.AssertErrorToken(t, w, "team_not_found")
}

func TestSubmitCode_StorageFailure(t *testing.T) {
	dir := t.TempDir()
	s, err := store.New(dir)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}

	dev := device.New(s, netctl.LogController{}, netctl.LogRedirector{}, "test-build", "192.168.4.1")
	dev.SetSettle(0)
	if err := dev.Boot(); err != nil {
		t.Fatalf("Failed to boot device: %v", err)
	}
	eng := game.New(s)
	if err := eng.Load(); err != nil {
		t.Fatalf("Failed to load game state: %v", err)
	}
	player := NewPlayerHandler(eng, metrics.New(prometheus.NewRegistry()))

	testutil.SaveCatalog(t, eng, []models.CheckpointInput{
		{Name: "Oak Tree", TokenText: "LEAF-42", Points: 10},
	})
	teamID := testutil.RegisterTeam(t, eng, "Foxes", "4242")

	// A directory squatting on the roster's temp path makes the save and
	// its retry both fail
	if err := os.Mkdir(filepath.Join(dir, store.DocTeams+".tmp"), 0o755); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	player.SubmitCode(w, testutil.MakeRequest("POST", "/api/team/submit_code", models.SubmitCodeRequest{TeamID: teamID, Token: "LEAF-42"}, nil))
	testutil.AssertStatus(t, w, 500)
	testutil.AssertErrorToken(t, w, "storage")
}

func TestLeaderboard(t *testing.T) {
	_, player, _, eng := setupHandlers(t)
	testutil.SaveCatalog(t, eng, []models.CheckpointInput{
		{Name: "Oak Tree", TokenText: "LEAF-42", Points: 10},
		{Name: "Fountain", TokenText: "SPLASH-7", Points: 5},
	})

	foxes := testutil.RegisterTeam(t, eng, "Foxes", "4242")
	owls := testutil.RegisterTeam(t, eng, "Owls", "1111")

	if _, err := eng.SubmitCodeword(foxes, "LEAF-42"); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.SubmitCodeword(owls, "SPLASH-7"); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	player.Leaderboard(w, testutil.MakeRequest("GET", "/api/leaderboard", nil, nil))
	testutil.AssertStatus(t, w, 200)

	var resp models.LeaderboardResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Teams) != 2 {
		t.Fatalf("Expected 2 teams, got %d", len(resp.Teams))
	}
	if resp.Teams[0].Name != "Foxes" || resp.Teams[0].Points != 10 || resp.Teams[0].Found != 1 {
		t.Errorf("Unexpected leader: %+v", resp.Teams[0])
	}
}
