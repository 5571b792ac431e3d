package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"quiz-studio/internal/app"
	"quiz-studio/internal/domain"
)

// QuizRepository is a read-through Redis cache in front of a backing
// repository (Postgres or memory). Quizzes are cached as JSON:
// SET quiz:{quizID} {json} EX ttl
// Writes go to the backing store first, then drop the cached copy.
// A load only fills the cache if no write for that id happened since it began.
type QuizRepository struct {
	client  *redis.Client
	backing app.QuizRepository
	ttl     time.Duration
	sf      singleflight.Group

	verMu    sync.Mutex
	versions map[string]uint64

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewQuizRepository(client *redis.Client, backing app.QuizRepository, ttl time.Duration) *QuizRepository {
	return &QuizRepository{
		client:   client,
		backing:  backing,
		ttl:      ttl,
		versions: make(map[string]uint64),
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuizRepository) FindByID(ctx context.Context, quizID string) (domain.Quiz, error) {
	if quiz, ok := r.cached(ctx, quizID); ok {
		return quiz, nil
	}

	result, err, _ := r.sf.Do(quizID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if quiz, ok := r.cached(ctx, quizID); ok {
			return quiz, nil
		}

		version := r.version(quizID)
		quiz, err := r.backing.FindByID(ctx, quizID)
		if err != nil {
			return domain.Quiz{}, err
		}
		r.fill(ctx, quizID, version, quiz)
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz).Clone(), nil
}

func (r *QuizRepository) Add(ctx context.Context, quiz domain.Quiz) error {
	if err := r.backing.Add(ctx, quiz); err != nil {
		return err
	}
	r.invalidate(ctx, quiz.ID)
	return nil
}

func (r *QuizRepository) Update(ctx context.Context, quiz domain.Quiz) error {
	if err := r.backing.Update(ctx, quiz); err != nil {
		return err
	}
	r.invalidate(ctx, quiz.ID)
	return nil
}

func (r *QuizRepository) Delete(ctx context.Context, quizID string) error {
	if err := r.backing.Delete(ctx, quizID); err != nil {
		return err
	}
	r.invalidate(ctx, quizID)
	return nil
}

func (r *QuizRepository) List(ctx context.Context) ([]domain.Quiz, error) {
	return r.backing.List(ctx)
}

func (r *QuizRepository) Count(ctx context.Context) (int, error) {
	return r.backing.Count(ctx)
}

func (r *QuizRepository) cached(ctx context.Context, quizID string) (domain.Quiz, bool) {
	data, err := r.client.Get(ctx, r.key(quizID)).Bytes()
	if err != nil {
		// redis.Nil is a plain miss; other errors fall through to the backing store too.
		return domain.Quiz{}, false
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(data, &quiz); err != nil {
		return domain.Quiz{}, false
	}
	return quiz, true
}

func (r *QuizRepository) version(quizID string) uint64 {
	r.verMu.Lock()
	defer r.verMu.Unlock()
	return r.versions[quizID]
}

// fill caches quiz unless the id was written after the load started.
// verMu is held across SET so a concurrent invalidate cannot slip in between.
func (r *QuizRepository) fill(ctx context.Context, quizID string, version uint64, quiz domain.Quiz) {
	data, err := json.Marshal(quiz)
	if err != nil {
		return
	}
	r.verMu.Lock()
	defer r.verMu.Unlock()
	if r.versions[quizID] != version {
		return
	}
	_ = r.client.Set(ctx, r.key(quizID), data, r.ttlWithJitter()).Err()
}

func (r *QuizRepository) invalidate(ctx context.Context, quizID string) {
	r.verMu.Lock()
	r.versions[quizID]++
	_ = r.client.Del(ctx, r.key(quizID)).Err()
	r.verMu.Unlock()
	r.sf.Forget(quizID)
}

func (r *QuizRepository) key(quizID string) string {
	return "quiz:" + quizID
}

func (r *QuizRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
