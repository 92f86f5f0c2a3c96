// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package sentiment

// Aspect keys emitted in Result.Aspects and stored on feedback rows.
const (
	AspectOdds        = "odds"
	AspectPayoutSpeed = "payout_speed"
	AspectApp         = "app_experience"
	AspectSupport     = "support"
	AspectPromotions  = "promotions"
)

// lexicon maps sentiment-bearing words to signed base weights. The vocabulary
// leans toward how bettors talk about a platform rather than general prose.
var lexicon = map[string]float64{
	// positive
	"great":       1,
	"good":        1,
	"excellent":   1,
	"amazing":     1,
	"awesome":     1,
	"fantastic":   1,
	"love":        1,
	"loved":       1,
	"best":        1,
	"fast":        1,
	"quick":       1,
	"instant":     1,
	"easy":        1,
	"smooth":      1,
	"simple":      1,
	"reliable":    1,
	"helpful":     1,
	"friendly":    1,
	"responsive":  1,
	"generous":    1,
	"competitive": 1,
	"fair":        1,
	"happy":       1,
	"satisfied":   1,
	"impressed":   1,
	"seamless":    1,
	"solid":       1,
	"clean":       1,

	// negative
	"bad":          -1,
	"terrible":     -1,
	"awful":        -1,
	"horrible":     -1,
	"worst":        -1,
	"hate":         -1,
	"hated":        -1,
	"slow":         -1,
	"late":         -1,
	"delayed":      -1,
	"stuck":        -1,
	"frozen":       -1,
	"broken":       -1,
	"crash":        -1,
	"crashed":      -1,
	"crashes":      -1,
	"buggy":        -1,
	"laggy":        -1,
	"confusing":    -1,
	"clunky":       -1,
	"difficult":    -1,
	"poor":         -1,
	"useless":      -1,
	"unfair":       -1,
	"rigged":       -1,
	"scam":         -1,
	"shady":        -1,
	"rude":         -1,
	"unresponsive": -1,
	"unhelpful":    -1,
	"stingy":       -1,
}

// negators flip the sign of the next lexicon hit within negationWindow tokens.
var negators = map[string]bool{
	"not":      true,
	"no":       true,
	"never":    true,
	"cannot":   true,
	"can't":    true,
	"won't":    true,
	"don't":    true,
	"doesn't":  true,
	"didn't":   true,
	"isn't":    true,
	"wasn't":   true,
	"aren't":   true,
	"couldn't": true,
	"wouldn't": true,
}

// intensifiers scale the next lexicon hit. Values above 1 amplify, below 1
// dampen. Consecutive intensifiers compound.
var intensifiers = map[string]float64{
	"very":       1.5,
	"really":     1.5,
	"extremely":  2.0,
	"incredibly": 2.0,
	"absolutely": 1.8,
	"super":      1.5,
	"totally":    1.5,
	"so":         1.3,
	"too":        1.5,
	"slightly":   0.5,
	"somewhat":   0.5,
	"kinda":      0.5,
	"fairly":     0.8,
	"barely":     0.3,
	"bit":        0.5,
}

// aspectKeywords routes clause scores onto the betting domains customers
// actually write about.
var aspectKeywords = map[string][]string{
	AspectOdds:        {"odds", "line", "lines", "spread", "spreads", "moneyline", "juice", "vig", "price", "prices"},
	AspectPayoutSpeed: {"payout", "payouts", "withdrawal", "withdrawals", "withdraw", "cashout", "cash", "deposit", "deposits", "funds", "money"},
	AspectApp:         {"app", "website", "site", "interface", "mobile", "platform", "design", "navigation", "login"},
	AspectSupport:     {"support", "service", "help", "agent", "chat", "staff", "team"},
	AspectPromotions:  {"bonus", "bonuses", "promo", "promos", "promotion", "promotions", "offer", "offers", "deal", "deals", "freebet", "boost"},
}

// keywordAspect is the inverted index over aspectKeywords, built once.
var keywordAspect = func() map[string]string {
	idx := make(map[string]string)
	for aspect, words := range aspectKeywords {
		for _, w := range words {
			idx[w] = aspect
		}
	}
	return idx
}()
