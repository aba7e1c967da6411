package model

// DamageResult is the outcome of a single damage instance.
// Created fresh per hit, never persisted.
type DamageResult struct {
	FinalDamage float64
	IsCrit      bool
	IsMiss      bool
	IsLifeSteal bool
}

// TextKind selects the floating combat text style.
type TextKind int8

const (
	TextNormal TextKind = iota
	TextCritical
	TextHeal
	TextMiss
	TextMagic
	TextExp
)

func (k TextKind) String() string {
	switch k {
	case TextNormal:
		return "normal"
	case TextCritical:
		return "critical"
	case TextHeal:
		return "heal"
	case TextMiss:
		return "miss"
	case TextMagic:
		return "magic"
	case TextExp:
		return "exp"
	default:
		return "unknown"
	}
}

// TextKind returns the floating text kind for a physical hit.
func (r DamageResult) TextKind() TextKind {
	switch {
	case r.IsMiss:
		return TextMiss
	case r.IsCrit:
		return TextCritical
	default:
		return TextNormal
	}
}
