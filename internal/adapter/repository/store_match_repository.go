package repository

import (
	"context"
	"sort"
	"time"

	"sparin/internal/domain/entity"
	"sparin/internal/domain/repository"
	"sparin/internal/store"
	"sparin/pkg/errors"
	"sparin/pkg/resource"
)

type storeMatchRepository struct {
	driver store.Driver
}

func NewStoreMatchRepository(driver store.Driver) repository.MatchRepository {
	return &storeMatchRepository{driver: driver}
}

// MatchID derives the match document id from the sorted user pair.
func MatchID(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return "match_" + userA + "_" + userB
}

func (r *storeMatchRepository) RecordSwipe(ctx context.Context, fromUserID, toUserID, action string) resource.Resource[*repository.SwipeResult] {
	if fromUserID == toUserID {
		return resource.FailureFromErr[*repository.SwipeResult](errors.BadRequest("Cannot swipe on yourself", nil))
	}
	if action != entity.SwipeLike && action != entity.SwipePass {
		return resource.FailureFromErr[*repository.SwipeResult](errors.BadRequest("Unknown swipe action", nil))
	}

	var result *repository.SwipeResult
	// The reciprocal check, the swipe and, on a mutual like, the match
	// all share one commit.
	err := r.driver.RunBatch(ctx, func(b *store.Batch) error {
		// Swipes are keyed by the target user, so re-swiping is a no-op.
		existing, err := store.TxGet[entity.Swipe](b, entity.SwipesCollection(fromUserID), toUserID)
		if err != nil {
			return err
		}
		if existing != nil {
			match, err := store.TxGet[entity.Match](b, entity.CollectionMatches, MatchID(fromUserID, toUserID))
			if err != nil {
				return err
			}
			result = &repository.SwipeResult{Swipe: existing, Match: match}
			return nil
		}

		swipe := &entity.Swipe{
			FromUserID: fromUserID,
			ToUserID:   toUserID,
			Action:     action,
			CreatedAt:  time.Now(),
		}

		var match *entity.Match
		if action == entity.SwipeLike {
			reciprocal, err := store.TxGet[entity.Swipe](b, entity.SwipesCollection(toUserID), fromUserID)
			if err != nil {
				return err
			}
			if reciprocal != nil && reciprocal.Action == entity.SwipeLike {
				userA, userB := fromUserID, toUserID
				if userB < userA {
					userA, userB = userB, userA
				}
				match = &entity.Match{
					UserA:     userA,
					UserB:     userB,
					CreatedAt: time.Now(),
				}
			}
		}

		if err := b.SetRecord(entity.SwipesCollection(fromUserID), toUserID, swipe); err != nil {
			return err
		}
		if match != nil {
			if err := b.SetRecord(entity.CollectionMatches, MatchID(fromUserID, toUserID), match); err != nil {
				return err
			}
		}
		result = &repository.SwipeResult{Swipe: swipe, Match: match}
		return nil
	})
	if err != nil {
		return resource.FailureFromErr[*repository.SwipeResult](batchErr("record swipe", err))
	}
	return resource.Success(result)
}

func (r *storeMatchRepository) ListForUser(ctx context.Context, userID string) resource.Resource[[]entity.Match] {
	// Array membership is not expressible with equality filters, so a
	// match carries both sides as scalar fields and we query each.
	asA, err := store.Query[entity.Match](ctx, r.driver, entity.CollectionMatches, "userA", userID)
	if err != nil {
		return resource.FailureFromErr[[]entity.Match](err)
	}
	asB, err := store.Query[entity.Match](ctx, r.driver, entity.CollectionMatches, "userB", userID)
	if err != nil {
		return resource.FailureFromErr[[]entity.Match](err)
	}
	matches := append(asA, asB...)
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return resource.Success(matches)
}

func (r *storeMatchRepository) GetSwipe(ctx context.Context, fromUserID, toUserID string) resource.Resource[*entity.Swipe] {
	swipe, err := store.Get[entity.Swipe](ctx, r.driver, entity.SwipesCollection(fromUserID), toUserID)
	if err != nil {
		return resource.FailureFromErr[*entity.Swipe](err)
	}
	if swipe == nil {
		return resource.FailureFromErr[*entity.Swipe](errors.NotFound("Swipe", nil))
	}
	return resource.Success(swipe)
}
