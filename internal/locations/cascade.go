package locations

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/logger"
)

// Level is one dropdown of the cascade.
type Level string

const (
	LevelCountry     Level = "country"
	LevelGovernorate Level = "governorate"
	LevelCity        Level = "city"
)

// LoadState tracks the fetch of one level's options.
type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateLoaded  LoadState = "loaded"
	StateFailed  LoadState = "failed"
)

// LevelState is the options and selection of one level.
type LevelState struct {
	State    LoadState `json:"state"`
	Options  []Option  `json:"options"`
	Selected string    `json:"selected"`
	Enabled  bool      `json:"enabled"`
}

// Snapshot is the whole cascade as seen by a client.
type Snapshot struct {
	Country     LevelState `json:"country"`
	Governorate LevelState `json:"governorate"`
	City        LevelState `json:"city"`
}

// Selection is the chosen country, governorate and city ids.
type Selection struct {
	Country     string
	Governorate string
	City        string
}

type level struct {
	state      LoadState
	options    []Option
	selected   string
	generation int
}

// Cascade is the per-session state machine behind the three dependent
// location dropdowns. Each wizard session owns its own cascade; nothing is
// cached across sessions.
type Cascade struct {
	mu      sync.Mutex
	source  Source
	tr      i18n.Translator
	log     *logger.Logger
	country level
	gov     level
	city    level
}

// NewCascade creates a cascade with every level idle.
func NewCascade(source Source, tr i18n.Translator, log *logger.Logger) *Cascade {
	return &Cascade{
		source:  source,
		tr:      tr,
		log:     log,
		country: level{state: StateIdle},
		gov:     level{state: StateIdle},
		city:    level{state: StateIdle},
	}
}

// Init fetches the country list.
func (c *Cascade) Init(ctx context.Context) {
	c.mu.Lock()
	gen := c.begin(&c.country)
	c.mu.Unlock()

	options, err := c.source.Countries(ctx)
	c.finish(&c.country, gen, options, err, "locations.countries")
}

// SelectCountry chooses a country, clears governorate and city, then loads
// the governorates of that country. An empty id only clears.
func (c *Cascade) SelectCountry(ctx context.Context, id string) error {
	c.mu.Lock()
	if id != "" && !c.has(&c.country, id) {
		c.mu.Unlock()
		return apperr.BadRequest(c.tr.T(i18n.MsgOptionNotAvailable))
	}
	c.country.selected = id
	resetLevel(&c.gov)
	resetLevel(&c.city)
	if id == "" {
		c.mu.Unlock()
		return nil
	}
	gen := c.begin(&c.gov)
	c.mu.Unlock()

	options, err := c.source.Governorates(ctx, id)
	c.finish(&c.gov, gen, options, err, "locations.governorates")
	return nil
}

// SelectGovernorate chooses a governorate of the selected country, clears the
// city, then loads its cities.
func (c *Cascade) SelectGovernorate(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.country.selected == "" {
		c.mu.Unlock()
		return apperr.BadRequest(c.tr.T(i18n.MsgSelectCountryFirst))
	}
	if id != "" && !c.has(&c.gov, id) {
		c.mu.Unlock()
		return apperr.BadRequest(c.tr.T(i18n.MsgOptionNotAvailable))
	}
	c.gov.selected = id
	resetLevel(&c.city)
	if id == "" {
		c.mu.Unlock()
		return nil
	}
	gen := c.begin(&c.city)
	c.mu.Unlock()

	options, err := c.source.Cities(ctx, id)
	c.finish(&c.city, gen, options, err, "locations.cities")
	return nil
}

// SelectCity chooses a loaded city of the selected governorate.
func (c *Cascade) SelectCity(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gov.selected == "" {
		return apperr.BadRequest(c.tr.T(i18n.MsgSelectGovernorateFirst))
	}
	if id != "" && !c.has(&c.city, id) {
		return apperr.BadRequest(c.tr.T(i18n.MsgOptionNotAvailable))
	}
	c.city.selected = id
	return nil
}

// Restore replays a saved selection, loading each list on the way. Ids that
// are no longer available stop the replay at that level.
func (c *Cascade) Restore(ctx context.Context, sel Selection) {
	c.Init(ctx)
	if sel.Country == "" || c.SelectCountry(ctx, sel.Country) != nil {
		return
	}
	if sel.Governorate == "" || c.SelectGovernorate(ctx, sel.Governorate) != nil {
		return
	}
	if sel.City != "" {
		_ = c.SelectCity(sel.City)
	}
}

// Enabled reports whether the level can be chosen from: its parent is
// selected and its options loaded and non-empty.
func (c *Cascade) Enabled(l Level) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled(l)
}

// Selection returns the current choices.
func (c *Cascade) Selection() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Selection{Country: c.country.selected, Governorate: c.gov.selected, City: c.city.selected}
}

// Snapshot returns every level.
func (c *Cascade) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Country:     c.view(&c.country, LevelCountry),
		Governorate: c.view(&c.gov, LevelGovernorate),
		City:        c.view(&c.city, LevelCity),
	}
}

func (c *Cascade) enabled(l Level) bool {
	var lv *level
	switch l {
	case LevelCountry:
		lv = &c.country
	case LevelGovernorate:
		if c.country.selected == "" {
			return false
		}
		lv = &c.gov
	case LevelCity:
		if c.gov.selected == "" {
			return false
		}
		lv = &c.city
	default:
		return false
	}
	return lv.state == StateLoaded && len(lv.options) > 0
}

func (c *Cascade) view(lv *level, l Level) LevelState {
	return LevelState{
		State:    lv.state,
		Options:  append([]Option{}, lv.options...),
		Selected: lv.selected,
		Enabled:  c.enabled(l),
	}
}

func (c *Cascade) has(lv *level, id string) bool {
	return lo.ContainsBy(lv.options, func(o Option) bool { return o.ID == id })
}

// begin marks lv loading and returns the generation the result must match.
func (c *Cascade) begin(lv *level) int {
	lv.generation++
	lv.state = StateLoading
	lv.options = nil
	return lv.generation
}

// finish stores a fetch result unless a newer fetch of the level started.
func (c *Cascade) finish(lv *level, gen int, options []Option, err error, op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if lv.generation != gen {
		return
	}
	if err != nil {
		if c.log != nil {
			c.log.BackendError(op, err)
		}
		lv.state = StateFailed
		lv.options = nil
		return
	}
	lv.state = StateLoaded
	lv.options = options
}

// resetLevel resets a dependent level and invalidates any fetch in flight.
func resetLevel(lv *level) {
	lv.generation++
	lv.state = StateIdle
	lv.options = nil
	lv.selected = ""
}
