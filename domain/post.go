package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post is the feed aggregate. Likes and comments are owned sub-documents;
// the author's name and avatar are denormalized snapshots taken at write
// time and never re-resolved.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Name      string    `json:"name,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Title     string    `json:"title"`
	Text      string    `json:"text,omitempty"`
	Link      string    `json:"link,omitempty"`
	Images    []Image   `json:"images,omitempty"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

// Image is an attachment on a post
type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Like marks that a user liked a post. At most one like per (post, user).
type Like struct {
	ID     string `json:"id"`
	UserID string `json:"user"`
}

func (l Like) entryID() string { return l.ID }

// Comment is a user comment on a post with an author snapshot
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c Comment) entryID() string { return c.ID }

// NewPost creates a post authored by the given user
func NewPost(author *User, title, text, link string, images []Image) *Post {
	return &Post{
		ID:        uuid.New().String(),
		UserID:    author.ID,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Title:     title,
		Text:      text,
		Link:      link,
		Images:    images,
		Likes:     []Like{},
		Comments:  []Comment{},
		CreatedAt: time.Now().UTC(),
	}
}

// LikedBy reports whether the user has already liked the post
func (p *Post) LikedBy(userID string) bool {
	for _, like := range p.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}

// AddLike records a like for the user. Fails when the user already liked
// the post.
func (p *Post) AddLike(userID string) error {
	if p.LikedBy(userID) {
		return ErrAlreadyLiked
	}
	p.Likes = insertFront(p.Likes, Like{ID: uuid.New().String(), UserID: userID})
	return nil
}

// RemoveLike removes the user's like. Likes are matched by owning user, not
// by entry identifier. Fails when the user never liked the post.
func (p *Post) RemoveLike(userID string) error {
	likes, removed := removeFirst(p.Likes, func(l Like) bool { return l.UserID == userID })
	if !removed {
		return ErrNotLiked
	}
	p.Likes = likes
	return nil
}

// AddComment prepends a comment carrying the author's current name and
// avatar. Multiple comments by the same user are allowed.
func (p *Post) AddComment(author *User, text string) Comment {
	comment := Comment{
		ID:        uuid.New().String(),
		UserID:    author.ID,
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: time.Now().UTC(),
	}
	p.Comments = insertFront(p.Comments, comment)
	return comment
}

// RemoveComment deletes a comment by identifier. Only the comment's author
// may remove it.
func (p *Post) RemoveComment(commentID, requesterID string) error {
	comment, found := findByID(p.Comments, commentID)
	if !found {
		return ErrCommentNotFound
	}
	if comment.UserID != requesterID {
		return ErrNotCommentAuthor
	}

	comments, _ := removeByID(p.Comments, commentID)
	p.Comments = comments
	return nil
}
