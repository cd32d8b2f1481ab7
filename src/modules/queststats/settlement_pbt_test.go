package queststats

import (
	"testing"
	"time"

	"questboard/src/core/models"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Running a quest to exhaustion must never overdraw the pool, never leave
// a negative bounty, and must close the quest exactly when attempts hit
// zero — for any starting pool and attempt count.
func TestSettlePoolProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("pool is never overdrawn and closes at zero attempts", prop.ForAll(
		func(bounty float64, attempts int) bool {
			quest := &models.Quest{
				ID:       uuid.New(),
				Bounty:   bounty,
				Attempts: attempts,
				Status:   models.QuestStatusOpen,
			}
			initial := bounty
			now := time.Now()

			var total float64
			for quest.Attempts > 0 {
				if quest.Status != models.QuestStatusOpen {
					return false // closed before the pool was exhausted
				}
				user := &models.User{ID: uuid.New()}
				reward := settle(quest, user, now)
				if reward < 0 || quest.Bounty < -1e-9 {
					return false
				}
				total += reward
			}

			if quest.Status != models.QuestStatusClosed {
				return false
			}
			// The recomputed divisor can pay out more than 95% of the
			// initial bounty (the worked sequence pays 97.375 of 100),
			// but the pool itself is a hard ceiling.
			return total <= initial+1e-6
		},
		gen.Float64Range(0.01, 10000),
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t)
}
