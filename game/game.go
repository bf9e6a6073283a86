// Copyright (c) 2026 Mike Logic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mike-logic/scavenged/auth"
	"github.com/mike-logic/scavenged/models"
	"github.com/mike-logic/scavenged/store"
)

// Sentinel errors surfaced to handlers.
var (
	ErrBadFields    = errors.New("bad registration fields")
	ErrNameTaken    = errors.New("team name already taken")
	ErrAuthFailed   = errors.New("login failed")
	ErrTeamNotFound = errors.New("team not found")
)

// Submit outcomes.
type Outcome int

const (
	Awarded Outcome = iota
	Duplicate
	TeamNotFound
	NoMatch
	Malformed
)

// SubmitResult reports one codeword submission.
type SubmitResult struct {
	Outcome      Outcome
	Awarded      int
	Total        int
	CheckpointID string
}

// Game owns the checkpoint catalog and team roster in memory and persists
// them through the store on every mutation. One mutex serializes all access;
// a mutation and its flush are atomic with respect to every other request.
type Game struct {
	mu    sync.Mutex
	store *store.Store
	items []models.Checkpoint
	teams []models.Team
}

// New returns a Game backed by s with an empty catalog and roster. Call
// Load before serving.
func New(s *store.Store) *Game {
	return &Game{store: s}
}

// Load pulls both documents from the store. Absent documents leave the
// corresponding collection empty; that is the normal first-boot state.
func (g *Game) Load() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.items = nil
	g.teams = nil
	if _, err := g.store.Load(store.DocCheckpoints, &g.items); err != nil {
		return err
	}
	if _, err := g.store.Load(store.DocTeams, &g.teams); err != nil {
		return err
	}
	for i := range g.teams {
		g.recomputeLocked(&g.teams[i])
	}
	return nil
}

// Clear drops the in-memory catalog and roster. Used after a wipe-all
// factory reset has already deleted the documents.
func (g *Game) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.items = nil
	g.teams = nil
}

// saveItemsLocked and saveTeamsLocked retry once before giving up; the
// caller must not acknowledge success to the requester until they return
// nil.
func (g *Game) saveItemsLocked() error {
	if err := g.store.Save(store.DocCheckpoints, g.itemsOrEmpty()); err != nil {
		slog.Warn("catalog save failed, retrying", "error", err)
		return g.store.Save(store.DocCheckpoints, g.itemsOrEmpty())
	}
	return nil
}

func (g *Game) saveTeamsLocked() error {
	if err := g.store.Save(store.DocTeams, g.teamsOrEmpty()); err != nil {
		slog.Warn("roster save failed, retrying", "error", err)
		return g.store.Save(store.DocTeams, g.teamsOrEmpty())
	}
	return nil
}

func (g *Game) itemsOrEmpty() []models.Checkpoint {
	if g.items == nil {
		return []models.Checkpoint{}
	}
	return g.items
}

func (g *Game) teamsOrEmpty() []models.Team {
	if g.teams == nil {
		return []models.Team{}
	}
	return g.teams
}

// recomputeLocked derives a team's points from its found set against the
// live catalog. Ids whose checkpoint no longer exists contribute nothing.
func (g *Game) recomputeLocked(t *models.Team) {
	pts := 0
	for _, id := range t.Found {
		if c := g.findItemByIDLocked(id); c != nil {
			pts += c.Points
		}
	}
	t.Points = pts
}

func (g *Game) findItemByIDLocked(id string) *models.Checkpoint {
	for i := range g.items {
		if g.items[i].ID == id {
			return &g.items[i]
		}
	}
	return nil
}

func (g *Game) findTeamByIDLocked(id string) *models.Team {
	for i := range g.teams {
		if g.teams[i].ID == id {
			return &g.teams[i]
		}
	}
	return nil
}

// findTeamByNameLocked matches case-sensitively; "Foxes" and "foxes" are
// distinct teams.
func (g *Game) findTeamByNameLocked(name string) *models.Team {
	for i := range g.teams {
		if g.teams[i].Name == name {
			return &g.teams[i]
		}
	}
	return nil
}

// ReplaceCatalog replaces the catalog wholesale from operator input. Entries
// without an id get one synthesized; names are sanitized; entries whose
// trimmed codeword fails the character policy are silently dropped rather
// than rejected row by row. Points default to 10 when missing or
// non-positive. Returns the number of checkpoints kept.
func (g *Game) ReplaceCatalog(entries []models.CheckpointInput) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	items := make([]models.Checkpoint, 0, len(entries))
	for _, e := range entries {
		c := models.Checkpoint{
			ID:        e.ID,
			Name:      models.SanitizeName(e.Name),
			TokenText: strings.TrimSpace(e.TokenText),
			Points:    e.Points,
		}
		if c.ID == "" {
			c.ID = models.NewCheckpointID()
		}
		if !models.SaneToken(c.TokenText) {
			continue
		}
		if c.Points <= 0 {
			c.Points = 10
		}
		items = append(items, c)
	}
	g.items = items

	// Totals may shrink or grow when the catalog changes under existing
	// found sets.
	for i := range g.teams {
		g.recomputeLocked(&g.teams[i])
	}

	if err := g.saveItemsLocked(); err != nil {
		return 0, err
	}
	if err := g.saveTeamsLocked(); err != nil {
		return 0, err
	}
	return len(items), nil
}

// Catalog returns the full catalog, codewords included. Operator-only.
func (g *Game) Catalog() []models.Checkpoint {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]models.Checkpoint, len(g.items))
	copy(out, g.items)
	return out
}

// ItemsPublic lists the catalog with codewords withheld.
func (g *Game) ItemsPublic() []models.PublicItem {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]models.PublicItem, 0, len(g.items))
	for _, c := range g.items {
		out = append(out, models.PublicItem{ID: c.ID, Name: c.Name, Points: c.Points})
	}
	return out
}

// TeamItems lists the catalog annotated with one team's found flags.
func (g *Game) TeamItems(teamID string) ([]models.TeamItem, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	t := g.findTeamByIDLocked(teamID)
	if t == nil {
		return nil, ErrTeamNotFound
	}
	found := make(map[string]bool, len(t.Found))
	for _, id := range t.Found {
		found[id] = true
	}
	out := make([]models.TeamItem, 0, len(g.items))
	for _, c := range g.items {
		out = append(out, models.TeamItem{
			ID:     c.ID,
			Name:   c.Name,
			Points: c.Points,
			Found:  found[c.ID],
		})
	}
	return out, nil
}

// Register creates a team. The sanitized name must be non-empty and unused;
// the PIN length must fall within the configured bounds. The roster is
// persisted before the new team id is returned.
func (g *Game) Register(name, pin string) (string, error) {
	name = models.SanitizeName(name)
	if name == "" || len(pin) < models.PinMinLen || len(pin) > models.PinMaxLen {
		return "", ErrBadFields
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.findTeamByNameLocked(name) != nil {
		return "", ErrNameTaken
	}
	t := models.Team{
		ID:        models.NewTeamID(),
		Name:      name,
		PinHash:   auth.HashSecret(pin),
		CreatedAt: time.Now().Unix(),
		Found:     []string{},
	}
	g.teams = append(g.teams, t)
	if err := g.saveTeamsLocked(); err != nil {
		return "", err
	}
	slog.Info("team registered", "team_id", t.ID, "name", t.Name)
	return t.ID, nil
}

// Login resolves a team by exact name and PIN. Failures are deliberately
// indistinguishable: a wrong name and a wrong PIN both return ErrAuthFailed.
func (g *Game) Login(name, pin string) (string, error) {
	name = models.SanitizeName(name)
	g.mu.Lock()
	defer g.mu.Unlock()
	t := g.findTeamByNameLocked(name)
	if t == nil || !auth.SecureEqual(auth.HashSecret(pin), t.PinHash) {
		return "", ErrAuthFailed
	}
	return t.ID, nil
}

// SubmitCodeword scores one codeword submission for a team. Matching runs
// in two explicit passes over the catalog: an exact constant-time pass
// first, then a case-insensitive pass. Exactness always wins over case
// convenience, and catalog order breaks ties within a pass. Resubmitting a
// found codeword is an idempotent no-op. The error return is non-nil only
// when persisting the award failed; the outcome is authoritative otherwise.
func (g *Game) SubmitCodeword(teamID, raw string) (SubmitResult, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return SubmitResult{Outcome: Malformed}, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	t := g.findTeamByIDLocked(teamID)
	if t == nil {
		return SubmitResult{Outcome: TeamNotFound}, nil
	}

	c := g.matchTokenLocked(token)
	if c == nil {
		return SubmitResult{Outcome: NoMatch}, nil
	}

	for _, id := range t.Found {
		if id == c.ID {
			return SubmitResult{Outcome: Duplicate, Total: t.Points, CheckpointID: c.ID}, nil
		}
	}

	t.Found = append(t.Found, c.ID)
	g.recomputeLocked(t)
	if err := g.saveTeamsLocked(); err != nil {
		return SubmitResult{}, err
	}
	slog.Info("codeword accepted", "team_id", t.ID, "checkpoint_id", c.ID, "awarded", c.Points, "total", t.Points)
	return SubmitResult{Outcome: Awarded, Awarded: c.Points, Total: t.Points, CheckpointID: c.ID}, nil
}

// matchTokenLocked implements the documented two-pass precedence.
func (g *Game) matchTokenLocked(token string) *models.Checkpoint {
	for i := range g.items {
		if auth.SecureEqual(g.items[i].TokenText, token) {
			return &g.items[i]
		}
	}
	lower := strings.ToLower(token)
	for i := range g.items {
		if strings.ToLower(g.items[i].TokenText) == lower {
			return &g.items[i]
		}
	}
	return nil
}

// Leaderboard recomputes every team's points against the live catalog and
// returns the top limit teams by points descending, earlier registration
// winning ties. The ranking is re-derived on every call, never cached.
func (g *Game) Leaderboard(limit int) []models.LeaderboardEntry {
	if limit <= 0 || limit > models.LeaderboardSize {
		limit = models.LeaderboardSize
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	ranked := make([]models.Team, len(g.teams))
	copy(ranked, g.teams)
	for i := range ranked {
		g.recomputeLocked(&ranked[i])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].CreatedAt < ranked[j].CreatedAt
	})

	out := make([]models.LeaderboardEntry, 0, limit)
	for _, t := range ranked {
		out = append(out, models.LeaderboardEntry{Name: t.Name, Points: t.Points, Found: len(t.Found)})
		if len(out) >= limit {
			break
		}
	}
	return out
}
