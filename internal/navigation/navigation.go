// Package navigation describes the calculator sections and the navigation
// state between them. State is a value; every transition returns a new one.
package navigation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/poder-adquisitivo/internal/compare"
)

// HomeID is the menu listing every section.
const HomeID = "menu"

// ErrUnknownSection is returned when selecting an id no section has.
var ErrUnknownSection = errors.New("unknown section")

// Section is one entry of the main menu.
type Section struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Variant     compare.Variant `json:"variant"`
	Defaults    compare.Input   `json:"defaults"`
}

var sections = []Section{
	{
		ID:          "boletos",
		Title:       "Boletos",
		Description: "Calculá cuántos boletos podés pagar según tu sueldo e inflación.",
		Icon:        "🚌",
		Variant:     compare.FareAffordability,
		Defaults:    compare.Input{BasePeriod: "2023-01", BaseAmount: 100000, CurrentAmount: 180000},
	},
	{
		ID:          "sueldoDolares",
		Title:       "Dólares",
		Description: "Convertí tu sueldo a dólares y compará con el pasado.",
		Icon:        "💵",
		Variant:     compare.UsdSalaryAdjusted,
		Defaults:    compare.Input{BasePeriod: "2020-01", CurrentAmount: 900000},
	},
	{
		ID:          "poder",
		Title:       "Poder adquisitivo",
		Description: "Medí si tu sueldo creció más o menos que la inflación.",
		Icon:        "📊",
		Variant:     compare.PurchasingPower,
		Defaults:    compare.Input{BasePeriod: "2023-01", BaseAmount: 100000, CurrentAmount: 180000},
	},
	{
		ID:          "dolares",
		Title:       "Inversión en dólares",
		Description: "Simulá si comprar dólares fue mejor que quedarse en pesos.",
		Icon:        "💱",
		Variant:     compare.UsdInvestment,
		Defaults:    compare.Input{BasePeriod: "2022-06", Dollars: 100},
	},
	{
		ID:          "sueldoDolaresSimple",
		Title:       "Comparar sueldos en dólares",
		Description: "Medí si tu sueldo creció más o menos en dólares.",
		Icon:        "📊",
		Variant:     compare.UsdSalarySimple,
		Defaults:    compare.Input{BasePeriod: "2020-01", BaseAmount: 50000, CurrentAmount: 900000},
	},
}

// Sections returns the menu entries in display order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// Find returns the section with id.
func Find(id string) (Section, bool) {
	for _, s := range sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// ForVariant returns the section that runs variant.
func ForVariant(v compare.Variant) (Section, bool) {
	for _, s := range sections {
		if s.Variant == v {
			return s, true
		}
	}
	return Section{}, false
}

// State is where the user is, plus the sections visited to get there.
type State struct {
	current string
	history []string
}

// Home is the initial state.
func Home() State {
	return State{current: HomeID}
}

// Current returns the id of the visible section, HomeID for the menu.
func (s State) Current() string {
	if s.current == "" {
		return HomeID
	}
	return s.current
}

// AtHome reports whether the menu is visible.
func (s State) AtHome() bool {
	return s.Current() == HomeID
}

// Section returns the visible section; false at the menu.
func (s State) Section() (Section, bool) {
	return Find(s.Current())
}

// Select moves to id. Selecting HomeID returns to the menu and clears the
// history; selecting the visible section is a no-op.
func (s State) Select(id string) (State, error) {
	if id == HomeID {
		return Home(), nil
	}
	if _, ok := Find(id); !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	if id == s.Current() {
		return s, nil
	}
	history := make([]string, len(s.history), len(s.history)+1)
	copy(history, s.history)
	history = append(history, s.Current())
	return State{current: id, history: history}, nil
}

// Back returns to the previously visible section, or the menu.
func (s State) Back() State {
	if len(s.history) == 0 {
		return Home()
	}
	last := len(s.history) - 1
	return State{current: s.history[last], history: s.history[:last:last]}
}

// Depth is the number of steps Back can take before reaching the menu.
func (s State) Depth() int {
	return len(s.history)
}
