package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/amiablealex/vantix/internal/domain/chip"
	"github.com/amiablealex/vantix/internal/domain/differential"
	"github.com/amiablealex/vantix/internal/domain/gameweek"
	"github.com/amiablealex/vantix/internal/domain/player"
	"github.com/amiablealex/vantix/internal/domain/playerstat"
	"github.com/amiablealex/vantix/internal/domain/squad"
	"github.com/amiablealex/vantix/internal/domain/team"
	"github.com/amiablealex/vantix/internal/domain/transfer"
	"github.com/amiablealex/vantix/internal/domain/weeklyscore"
)

type entryGW struct {
	entryID int64
	gw      int
}

type chipKey struct {
	entryID int64
	gw      int
	name    string
}

// memData is the backing state of one in-memory league store.
type memData struct {
	teams         map[int64]team.Team
	gameweeks     map[int]gameweek.Gameweek
	scores        map[entryGW]weeklyscore.Score
	transfers     map[entryGW]transfer.Activity
	chips         map[chipKey]chip.Usage
	playerStats   map[int64]playerstat.Stat
	squads        map[entryGW]squad.Snapshot
	differentials map[entryGW]differential.Differential
	players       map[int64]player.Player
}

func newMemData() *memData {
	return &memData{
		teams:         make(map[int64]team.Team),
		gameweeks:     make(map[int]gameweek.Gameweek),
		scores:        make(map[entryGW]weeklyscore.Score),
		transfers:     make(map[entryGW]transfer.Activity),
		chips:         make(map[chipKey]chip.Usage),
		playerStats:   make(map[int64]playerstat.Stat),
		squads:        make(map[entryGW]squad.Snapshot),
		differentials: make(map[entryGW]differential.Differential),
		players:       make(map[int64]player.Player),
	}
}

func (d *memData) clone() *memData {
	out := newMemData()
	for k, v := range d.teams {
		out.teams[k] = v
	}
	for k, v := range d.gameweeks {
		out.gameweeks[k] = v
	}
	for k, v := range d.scores {
		out.scores[k] = v
	}
	for k, v := range d.transfers {
		out.transfers[k] = v
	}
	for k, v := range d.chips {
		out.chips[k] = v
	}
	for k, v := range d.playerStats {
		out.playerStats[k] = v
	}
	for k, v := range d.squads {
		out.squads[k] = v
	}
	for k, v := range d.differentials {
		out.differentials[k] = v
	}
	for k, v := range d.players {
		out.players[k] = v
	}
	return out
}

// memStores is a LeagueStores over in-process maps, with transactional
// rollback emulated by snapshot and restore.
type memStores struct {
	data *memData
}

func newMemStores() *memStores {
	return &memStores{data: newMemData()}
}

func (m *memStores) Teams() team.Repository                 { return memTeamRepo{m.data} }
func (m *memStores) Gameweeks() gameweek.Repository         { return memGameweekRepo{m.data} }
func (m *memStores) Scores() weeklyscore.Repository         { return memScoreRepo{m.data} }
func (m *memStores) Transfers() transfer.Repository         { return memTransferRepo{m.data} }
func (m *memStores) Chips() chip.Repository                 { return memChipRepo{m.data} }
func (m *memStores) PlayerStats() playerstat.Repository     { return memPlayerStatRepo{m.data} }
func (m *memStores) Squads() squad.Repository               { return memSquadRepo{m.data} }
func (m *memStores) Differentials() differential.Repository { return memDifferentialRepo{m.data} }
func (m *memStores) Players() player.Repository             { return memPlayerRepo{m.data} }

func (m *memStores) InTx(ctx context.Context, fn func(tx LeagueStores) error) error {
	backup := m.data.clone()
	if err := fn(m); err != nil {
		m.data = backup
		return err
	}
	return nil
}

type memProvider struct {
	stores map[int64]*memStores
}

func newMemProvider() *memProvider {
	return &memProvider{stores: make(map[int64]*memStores)}
}

func (p *memProvider) Open(_ context.Context, leagueCode int64) (LeagueStores, error) {
	return p.store(leagueCode), nil
}

func (p *memProvider) Exists(leagueCode int64) bool {
	_, ok := p.stores[leagueCode]
	return ok
}

func (p *memProvider) store(leagueCode int64) *memStores {
	st, ok := p.stores[leagueCode]
	if !ok {
		st = newMemStores()
		p.stores[leagueCode] = st
	}
	return st
}

type memTeamRepo struct{ d *memData }

func (r memTeamRepo) Upsert(_ context.Context, t team.Team) error {
	if err := t.Validate(); err != nil {
		return err
	}
	r.d.teams[t.EntryID] = t
	return nil
}

func (r memTeamRepo) List(_ context.Context) ([]team.Team, error) {
	out := make([]team.Team, 0, len(r.d.teams))
	for _, t := range r.d.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamName != out[j].TeamName {
			return out[i].TeamName < out[j].TeamName
		}
		return out[i].EntryID < out[j].EntryID
	})
	return out, nil
}

type memGameweekRepo struct{ d *memData }

func (r memGameweekRepo) Upsert(_ context.Context, gw gameweek.Gameweek) error {
	if existing, ok := r.d.gameweeks[gw.ID]; ok && existing.Finished {
		gw.Finished = true
	}
	r.d.gameweeks[gw.ID] = gw
	return nil
}

func (r memGameweekRepo) List(_ context.Context) ([]gameweek.Gameweek, error) {
	out := make([]gameweek.Gameweek, 0, len(r.d.gameweeks))
	for _, gw := range r.d.gameweeks {
		out = append(out, gw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memScoreRepo struct{ d *memData }

func (r memScoreRepo) Upsert(_ context.Context, score weeklyscore.Score) error {
	r.d.scores[entryGW{score.EntryID, score.Gameweek}] = score
	return nil
}

func (r memScoreRepo) List(_ context.Context, entryIDs []int64) ([]weeklyscore.Score, error) {
	out := make([]weeklyscore.Score, 0, len(r.d.scores))
	for _, score := range r.d.scores {
		if matchesEntry(entryIDs, score.EntryID) {
			out = append(out, score)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Gameweek != out[j].Gameweek {
			return out[i].Gameweek < out[j].Gameweek
		}
		return out[i].EntryID < out[j].EntryID
	})
	return out, nil
}

func (r memScoreRepo) LastUpdatedAt(_ context.Context) (time.Time, bool, error) {
	var latest time.Time
	found := false
	for _, score := range r.d.scores {
		if score.UpdatedAt.After(latest) {
			latest = score.UpdatedAt
			found = true
		}
	}
	return latest, found, nil
}

type memTransferRepo struct{ d *memData }

func (r memTransferRepo) Upsert(_ context.Context, activity transfer.Activity) error {
	r.d.transfers[entryGW{activity.EntryID, activity.Gameweek}] = activity
	return nil
}

func (r memTransferRepo) ListByGameweek(ctx context.Context, gw int, entryIDs []int64) ([]transfer.Activity, error) {
	all, err := r.List(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	out := make([]transfer.Activity, 0, len(all))
	for _, activity := range all {
		if activity.Gameweek == gw {
			out = append(out, activity)
		}
	}
	return out, nil
}

func (r memTransferRepo) List(_ context.Context, entryIDs []int64) ([]transfer.Activity, error) {
	out := make([]transfer.Activity, 0, len(r.d.transfers))
	for _, activity := range r.d.transfers {
		if matchesEntry(entryIDs, activity.EntryID) {
			out = append(out, activity)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Gameweek != out[j].Gameweek {
			return out[i].Gameweek < out[j].Gameweek
		}
		return out[i].EntryID < out[j].EntryID
	})
	return out, nil
}

type memChipRepo struct{ d *memData }

func (r memChipRepo) Record(_ context.Context, usage chip.Usage) error {
	key := chipKey{usage.EntryID, usage.Gameweek, usage.Name}
	if _, ok := r.d.chips[key]; !ok {
		r.d.chips[key] = usage
	}
	return nil
}

func (r memChipRepo) List(_ context.Context, entryIDs []int64) ([]chip.Usage, error) {
	out := make([]chip.Usage, 0, len(r.d.chips))
	for _, usage := range r.d.chips {
		if matchesEntry(entryIDs, usage.EntryID) {
			out = append(out, usage)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Gameweek != out[j].Gameweek {
			return out[i].Gameweek < out[j].Gameweek
		}
		return out[i].EntryID < out[j].EntryID
	})
	return out, nil
}

type memPlayerStatRepo struct{ d *memData }

func (r memPlayerStatRepo) Upsert(_ context.Context, stat playerstat.Stat) error {
	r.d.playerStats[stat.EntryID] = stat
	return nil
}

func (r memPlayerStatRepo) List(_ context.Context, entryIDs []int64) ([]playerstat.Stat, error) {
	out := make([]playerstat.Stat, 0, len(r.d.playerStats))
	for _, stat := range r.d.playerStats {
		if matchesEntry(entryIDs, stat.EntryID) {
			out = append(out, stat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryID < out[j].EntryID })
	return out, nil
}

type memSquadRepo struct{ d *memData }

func (r memSquadRepo) Upsert(_ context.Context, snapshot squad.Snapshot) error {
	r.d.squads[entryGW{snapshot.EntryID, snapshot.Gameweek}] = snapshot
	return nil
}

func (r memSquadRepo) ListByGameweek(_ context.Context, gw int, entryIDs []int64) ([]squad.Snapshot, error) {
	out := make([]squad.Snapshot, 0, len(r.d.squads))
	for _, snapshot := range r.d.squads {
		if snapshot.Gameweek == gw && matchesEntry(entryIDs, snapshot.EntryID) {
			out = append(out, snapshot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryID < out[j].EntryID })
	return out, nil
}

type memDifferentialRepo struct{ d *memData }

func (r memDifferentialRepo) Upsert(_ context.Context, diff differential.Differential) error {
	r.d.differentials[entryGW{diff.EntryID, diff.Gameweek}] = diff
	return nil
}

func (r memDifferentialRepo) ListByGameweek(_ context.Context, gw int, entryIDs []int64) ([]differential.Differential, error) {
	out := make([]differential.Differential, 0, len(r.d.differentials))
	for _, diff := range r.d.differentials {
		if diff.Gameweek == gw && matchesEntry(entryIDs, diff.EntryID) {
			out = append(out, diff)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].EntryID < out[j].EntryID
	})
	return out, nil
}

func (r memDifferentialRepo) LatestGameweek(_ context.Context) (int, bool, error) {
	latest, found := 0, false
	for key := range r.d.differentials {
		if key.gw > latest {
			latest = key.gw
			found = true
		}
	}
	return latest, found, nil
}

type memPlayerRepo struct{ d *memData }

func (r memPlayerRepo) Upsert(_ context.Context, p player.Player) error {
	r.d.players[p.ID] = p
	return nil
}

func (r memPlayerRepo) NamesByID(_ context.Context) (map[int64]string, error) {
	out := make(map[int64]string, len(r.d.players))
	for id, p := range r.d.players {
		out[id] = p.WebName
	}
	return out, nil
}

func matchesEntry(entryIDs []int64, entryID int64) bool {
	if len(entryIDs) == 0 {
		return true
	}
	for _, id := range entryIDs {
		if id == entryID {
			return true
		}
	}
	return false
}

// stubUpstream is a scriptable UpstreamClient.
type stubUpstream struct {
	bootstrap    UpstreamBootstrap
	bootstrapErr error

	teamsByLeague map[int64][]UpstreamTeam
	standingsErr  map[int64]error

	histories  map[int64]UpstreamHistory
	historyErr map[int64]error

	transfers   map[int64][]UpstreamTransfer
	transferErr map[int64]error

	picks    map[int64][]int64
	picksErr map[int64]error

	bootstrapCalls int
	bootstrapHook  func()
}

func newStubUpstream() *stubUpstream {
	return &stubUpstream{
		teamsByLeague: make(map[int64][]UpstreamTeam),
		standingsErr:  make(map[int64]error),
		histories:     make(map[int64]UpstreamHistory),
		historyErr:    make(map[int64]error),
		transfers:     make(map[int64][]UpstreamTransfer),
		transferErr:   make(map[int64]error),
		picks:         make(map[int64][]int64),
		picksErr:      make(map[int64]error),
	}
}

func (s *stubUpstream) FetchBootstrap(context.Context) (UpstreamBootstrap, error) {
	s.bootstrapCalls++
	if s.bootstrapHook != nil {
		s.bootstrapHook()
	}
	if s.bootstrapErr != nil {
		return UpstreamBootstrap{}, s.bootstrapErr
	}
	return s.bootstrap, nil
}

func (s *stubUpstream) FetchLeagueTeams(_ context.Context, leagueCode int64) ([]UpstreamTeam, error) {
	if err := s.standingsErr[leagueCode]; err != nil {
		return nil, err
	}
	return s.teamsByLeague[leagueCode], nil
}

func (s *stubUpstream) FetchTeamHistory(_ context.Context, entryID int64) (UpstreamHistory, error) {
	if err := s.historyErr[entryID]; err != nil {
		return UpstreamHistory{}, err
	}
	return s.histories[entryID], nil
}

func (s *stubUpstream) FetchTeamTransfers(_ context.Context, entryID int64) ([]UpstreamTransfer, error) {
	if err := s.transferErr[entryID]; err != nil {
		return nil, err
	}
	return s.transfers[entryID], nil
}

func (s *stubUpstream) FetchSquadPicks(_ context.Context, entryID int64, _ int) ([]int64, error) {
	if err := s.picksErr[entryID]; err != nil {
		return nil, err
	}
	return s.picks[entryID], nil
}
