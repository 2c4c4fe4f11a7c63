package systems

import (
	"babayaga/internal/core/types/enums"
	"babayaga/internal/domain"
)

// strikeMatrix is the single answer to "may a source of faction F hit that
// hurtbox?". Environmental damage hits everyone.
var strikeMatrix = map[enums.Faction]domain.FactionMask{
	enums.FactionPlayer:      domain.MaskOf(enums.FactionEnemy),
	enums.FactionEnemy:       domain.MaskOf(enums.FactionPlayer),
	enums.FactionNPC:         domain.MaskOf(enums.FactionEnemy),
	enums.FactionEnvironment: domain.MaskOf(enums.FactionPlayer, enums.FactionEnemy, enums.FactionNPC, enums.FactionEnvironment),
}

// StrikeMask returns the hurtbox factions a source of faction f may strike.
func StrikeMask(f enums.Faction) domain.FactionMask {
	return strikeMatrix[f]
}

func MayStrike(src, dst enums.Faction) bool {
	return StrikeMask(src).Has(dst)
}
