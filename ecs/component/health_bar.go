package component

import (
	"fmt"
	"math"

	"github.com/milk9111/tandem/party"
)

// HealthBar is the UI-facing copy of a character's health. It implements
// party.HealthDisplay; the HUD draws from it.
type HealthBar struct {
	Owner   party.CharacterID
	Max     float64
	Current float64
	Fill    float64
	Label   string
	Updates int
}

var HealthBarComponent = NewComponent[HealthBar]()

func (b *HealthBar) UpdateDisplay(maxHealth, currentHealth float64) {
	if b == nil {
		return
	}
	b.Max = maxHealth
	b.Current = currentHealth
	b.Fill = 0
	if maxHealth > 0 {
		b.Fill = math.Max(0, math.Min(1, currentHealth/maxHealth))
	}
	b.Label = fmt.Sprintf("HP %d/%d", int(math.Round(currentHealth)), int(math.Round(maxHealth)))
	b.Updates++
}

var _ party.HealthDisplay = (*HealthBar)(nil)
