package board

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Coveloper/internal/core/comments"
	"Coveloper/internal/core/members"
	"Coveloper/internal/core/posts"
	"Coveloper/internal/core/votes"
)

// fakeStore is an in-memory Store for service tests.
// Each repository call takes the data mutex briefly; GetByIDForUpdate additionally
// takes a per-post lock held until the transaction ends, like a row lock.
// Rollback replays an undo log.
type fakeStore struct {
	posts    map[int64]*posts.Post
	comments map[int64]*comments.Comment
	votes    map[int64]*votes.Vote
	rowLocks map[int64]*sync.Mutex
	clock    func() time.Time

	// failAdjust makes AdjustUpvoteCount fail, to exercise rollback
	failAdjust error

	mu     sync.Mutex
	nextID int64
}

func newFakeStore() *fakeStore {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	var tick int64
	s := &fakeStore{
		posts:    make(map[int64]*posts.Post),
		comments: make(map[int64]*comments.Comment),
		votes:    make(map[int64]*votes.Vote),
		rowLocks: make(map[int64]*sync.Mutex),
	}
	s.clock = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return s
}

func (s *fakeStore) InTx(ctx context.Context, opts TxOptions, fn func(tx Tx) error) (err error) {
	tx := &fakeTx{store: s, readOnly: opts.ReadOnly, held: make(map[int64]*sync.Mutex)}

	defer func() {
		if p := recover(); p != nil {
			tx.rollback()
			panic(p)
		}
		if err != nil {
			tx.rollback()
			return
		}
		tx.release()
	}()

	return fn(tx)
}

func (s *fakeStore) newID() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) voteCount(postID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.votes {
		if v.PostID == postID {
			n++
		}
	}
	return n
}

func (s *fakeStore) upvoteCount(postID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.posts[postID]; ok {
		return p.UpvoteCount
	}
	return -1
}

func (s *fakeStore) selectedCount(postID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.comments {
		if c.PostID == postID && c.Selected {
			n++
		}
	}
	return n
}

func (s *fakeStore) childCount(postID int64) (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var nc, nv int
	for _, c := range s.comments {
		if c.PostID == postID {
			nc++
		}
	}
	for _, v := range s.votes {
		if v.PostID == postID {
			nv++
		}
	}
	return nc, nv
}

type fakeTx struct {
	store    *fakeStore
	held     map[int64]*sync.Mutex
	undo     []func()
	readOnly bool
}

func (t *fakeTx) Posts() posts.Repository       { return &fakePostRepo{tx: t} }
func (t *fakeTx) Comments() comments.Repository { return &fakeCommentRepo{tx: t} }
func (t *fakeTx) Votes() votes.Repository       { return &fakeVoteRepo{tx: t} }

func (t *fakeTx) write(undo func()) error {
	if t.readOnly {
		undo()
		return fmt.Errorf("write in read-only transaction")
	}
	t.undo = append(t.undo, undo)
	return nil
}

func (t *fakeTx) lockRow(postID int64) {
	if _, ok := t.held[postID]; ok {
		return
	}
	t.store.mu.Lock()
	l, ok := t.store.rowLocks[postID]
	if !ok {
		l = &sync.Mutex{}
		t.store.rowLocks[postID] = l
	}
	t.store.mu.Unlock()

	l.Lock()
	t.held[postID] = l
}

func (t *fakeTx) rollback() {
	t.store.mu.Lock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.store.mu.Unlock()
	t.release()
}

func (t *fakeTx) release() {
	for id, l := range t.held {
		l.Unlock()
		delete(t.held, id)
	}
}

type fakePostRepo struct{ tx *fakeTx }

func (r *fakePostRepo) Create(ctx context.Context, post *posts.Post) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = s.newID()
	post.CreatedAt = s.clock()
	post.UpdatedAt = post.CreatedAt
	post.UpvoteCount = 0
	stored := *post
	s.posts[post.ID] = &stored

	id := post.ID
	return r.tx.write(func() { delete(s.posts, id) })
}

func (r *fakePostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, posts.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) GetByIDForUpdate(ctx context.Context, id int64) (*posts.Post, error) {
	r.tx.lockRow(id)
	return r.GetByID(ctx, id)
}

func (r *fakePostRepo) List(ctx context.Context) ([]*posts.Post, error) {
	return r.filter(func(*posts.Post) bool { return true }), nil
}

func (r *fakePostRepo) ListByAuthor(ctx context.Context, memberID int64) ([]*posts.Post, error) {
	return r.filter(func(p *posts.Post) bool { return p.Author.ID == memberID }), nil
}

func (r *fakePostRepo) filter(keep func(*posts.Post) bool) []*posts.Post {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*posts.Post
	for id := int64(1); id <= s.nextID; id++ {
		if p, ok := s.posts[id]; ok && keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}

func (r *fakePostRepo) Update(ctx context.Context, post *posts.Post) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.posts[post.ID]
	if !ok {
		return posts.ErrNotFound
	}
	before := *current

	current.Title = post.Title
	current.Content = post.Content
	current.ProjectType = post.ProjectType
	current.TeamSize = post.TeamSize
	current.CurrentMembers = post.CurrentMembers
	current.UpdatedAt = s.clock()
	post.UpdatedAt = current.UpdatedAt

	return r.tx.write(func() { *current = before })
}

func (r *fakePostRepo) AdjustUpvoteCount(ctx context.Context, id int64, delta int) (int, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAdjust != nil {
		return 0, s.failAdjust
	}
	p, ok := s.posts[id]
	if !ok {
		return 0, posts.ErrNotFound
	}
	if p.UpvoteCount+delta < 0 {
		return 0, fmt.Errorf("upvote_count would become negative")
	}
	p.UpvoteCount += delta

	if err := r.tx.write(func() { p.UpvoteCount -= delta }); err != nil {
		return 0, err
	}
	return p.UpvoteCount, nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id int64) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return posts.ErrNotFound
	}
	for _, c := range s.comments {
		if c.PostID == id {
			return fmt.Errorf("post %d still has comments", id)
		}
	}
	for _, v := range s.votes {
		if v.PostID == id {
			return fmt.Errorf("post %d still has votes", id)
		}
	}
	delete(s.posts, id)
	return r.tx.write(func() { s.posts[id] = p })
}

type fakeCommentRepo struct{ tx *fakeTx }

func (r *fakeCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[comment.PostID]; !ok {
		return posts.ErrNotFound
	}
	comment.ID = s.newID()
	comment.CreatedAt = s.clock()
	comment.UpdatedAt = comment.CreatedAt
	stored := *comment
	s.comments[comment.ID] = &stored

	id := comment.ID
	return r.tx.write(func() { delete(s.comments, id) })
}

func (r *fakeCommentRepo) GetByID(ctx context.Context, id int64) (*comments.Comment, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, comments.ErrCommentNotFound
	}
	cp := *c
	return &cp, nil
}

// ListByPost returns comments in insertion order so the service's own ordering is exercised
func (r *fakeCommentRepo) ListByPost(ctx context.Context, postID int64) ([]*comments.Comment, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*comments.Comment
	for id := int64(1); id <= s.nextID; id++ {
		if c, ok := s.comments[id]; ok && c.PostID == postID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) UpdateContent(ctx context.Context, comment *comments.Comment) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.comments[comment.ID]
	if !ok {
		return comments.ErrCommentNotFound
	}
	before := *current
	current.Content = comment.Content
	current.UpdatedAt = s.clock()
	comment.UpdatedAt = current.UpdatedAt
	return r.tx.write(func() { *current = before })
}

func (r *fakeCommentRepo) MarkSelected(ctx context.Context, id int64) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.comments[id]
	if !ok {
		return comments.ErrCommentNotFound
	}
	for _, c := range s.comments {
		if c.PostID == current.PostID && c.Selected && c.ID != id {
			return ErrAnswerAlreadySelected
		}
	}
	before := current.Selected
	current.Selected = true
	return r.tx.write(func() { current.Selected = before })
}

func (r *fakeCommentRepo) Delete(ctx context.Context, id int64) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return comments.ErrCommentNotFound
	}
	delete(s.comments, id)
	return r.tx.write(func() { s.comments[id] = c })
}

func (r *fakeCommentRepo) DeleteByPost(ctx context.Context, postID int64) (int64, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make(map[int64]*comments.Comment)
	for id, c := range s.comments {
		if c.PostID == postID {
			removed[id] = c
			delete(s.comments, id)
		}
	}
	err := r.tx.write(func() {
		for id, c := range removed {
			s.comments[id] = c
		}
	})
	return int64(len(removed)), err
}

type fakeVoteRepo struct{ tx *fakeTx }

func (r *fakeVoteRepo) Create(ctx context.Context, vote *votes.Vote) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.votes {
		if v.PostID == vote.PostID && v.MemberID == vote.MemberID {
			return votes.ErrVoteAlreadyExists
		}
	}
	vote.ID = s.newID()
	vote.CreatedAt = s.clock()
	stored := *vote
	s.votes[vote.ID] = &stored

	id := vote.ID
	return r.tx.write(func() { delete(s.votes, id) })
}

func (r *fakeVoteRepo) GetByPostAndMember(ctx context.Context, postID, memberID int64) (*votes.Vote, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.votes {
		if v.PostID == postID && v.MemberID == memberID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, votes.ErrVoteNotFound
}

func (r *fakeVoteRepo) Delete(ctx context.Context, id int64) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.votes[id]
	if !ok {
		return votes.ErrVoteNotFound
	}
	delete(s.votes, id)
	return r.tx.write(func() { s.votes[id] = v })
}

func (r *fakeVoteRepo) CountByPost(ctx context.Context, postID int64) (int, error) {
	return r.tx.store.voteCount(postID), nil
}

func (r *fakeVoteRepo) DeleteByPost(ctx context.Context, postID int64) (int64, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make(map[int64]*votes.Vote)
	for id, v := range s.votes {
		if v.PostID == postID {
			removed[id] = v
			delete(s.votes, id)
		}
	}
	err := r.tx.write(func() {
		for id, v := range removed {
			s.votes[id] = v
		}
	})
	return int64(len(removed)), err
}

var (
	alice = members.Member{ID: 1, Email: "alice@example.com", Nickname: "alice"}
	bob   = members.Member{ID: 2, Email: "bob@example.com", Nickname: "bob"}
	carol = members.Member{ID: 3, Email: "carol@example.com", Nickname: "carol"}
)
