package share

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"planboard/domain"
	"planboard/store"
)

// AnonymousAuthor labels comments and reviews whose caller supplied no name.
// It is display text only and plays no part in authorization.
const AnonymousAuthor = "Anonymous"

// Dispatcher executes authorized actions against the store. Every operation
// is scoped by the organization on the grant; ids or organization fields in
// the payload can never steer a write into another tenant.
type Dispatcher struct {
	DB *sql.DB
}

// VerifyResult answers the "verify" action.
type VerifyResult struct {
	Valid          bool   `json:"valid"`
	OrganizationID string `json:"organization_id"`
	AccessLevel    string `json:"access_level"`
}

// SharedPost decorates a post with rendered content for anonymous readers.
type SharedPost struct {
	store.PostData
	ContentHTML string `json:"content_html"`
}

// SharedData answers the "get_data" action.
type SharedData struct {
	Organization domain.Organization `json:"organization"`
	Posts        []SharedPost        `json:"posts"`
}

// Dispatch runs one action under the grant. The permission gate decides first;
// each action then performs a single store write (or a snapshot read), so the
// request either fully applies or fully fails.
func (d *Dispatcher) Dispatch(ctx context.Context, grant domain.ShareGrant, action string, payload json.RawMessage) (any, error) {
	if err := Check(grant, action); err != nil {
		return nil, err
	}

	switch action {
	case ActionVerify:
		return VerifyResult{Valid: true, OrganizationID: grant.OrganizationID, AccessLevel: grant.AccessLevel}, nil
	case ActionGetData:
		return d.getData(ctx, grant)
	case ActionCreatePost:
		return d.createPost(ctx, grant, payload)
	case ActionUpdatePost:
		return d.updatePost(ctx, grant, payload)
	case ActionDeletePost:
		return d.deletePost(ctx, grant, payload)
	case ActionAddComment:
		return d.addComment(ctx, grant, payload)
	case ActionAddReview:
		return d.addReview(ctx, grant, payload)
	}
	return nil, domain.ErrUnknownAction
}

func (d *Dispatcher) getData(ctx context.Context, grant domain.ShareGrant) (any, error) {
	data, err := store.GetOrganizationData(ctx, d.DB, grant.OrganizationID)
	if err != nil {
		return nil, err
	}
	out := SharedData{Organization: data.Organization, Posts: []SharedPost{}}
	for _, p := range data.Posts {
		out.Posts = append(out.Posts, SharedPost{PostData: p, ContentHTML: safeMd(p.Content)})
	}
	return out, nil
}

type createPostPayload struct {
	Date     string `json:"date"`
	Content  string `json:"content"`
	MediaURL string `json:"media_url"`
	Status   string `json:"status"`
}

func (d *Dispatcher) createPost(ctx context.Context, grant domain.ShareGrant, payload json.RawMessage) (any, error) {
	var in createPostPayload
	if err := decode(payload, &in); err != nil {
		return nil, err
	}
	if in.Date == "" || in.Content == "" {
		return nil, fmt.Errorf("%w: date and content are required", domain.ErrInvalidPayload)
	}
	if in.Status == "" {
		in.Status = domain.PostStatusProcess
	}
	if !domain.ValidPostStatus(in.Status) {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidPayload, in.Status)
	}
	return store.CreatePost(ctx, d.DB, domain.Post{
		ID:             uuid.NewString(),
		OrganizationID: grant.OrganizationID,
		Content:        in.Content,
		MediaURL:       in.MediaURL,
		Status:         in.Status,
		Date:           in.Date,
	})
}

type updatePostPayload struct {
	ID       string  `json:"id"`
	Content  *string `json:"content"`
	MediaURL *string `json:"media_url"`
	Status   *string `json:"status"`
	Date     *string `json:"date"`
}

func (d *Dispatcher) updatePost(ctx context.Context, grant domain.ShareGrant, payload json.RawMessage) (any, error) {
	var in updatePostPayload
	if err := decode(payload, &in); err != nil {
		return nil, err
	}
	if in.ID == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrInvalidPayload)
	}
	if in.Status != nil && !domain.ValidPostStatus(*in.Status) {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidPayload, *in.Status)
	}
	return store.UpdatePost(ctx, d.DB, grant.OrganizationID, in.ID, store.PostUpdate{
		Content:  in.Content,
		MediaURL: in.MediaURL,
		Status:   in.Status,
		Date:     in.Date,
	})
}

type deletePostPayload struct {
	ID string `json:"id"`
}

func (d *Dispatcher) deletePost(ctx context.Context, grant domain.ShareGrant, payload json.RawMessage) (any, error) {
	var in deletePostPayload
	if err := decode(payload, &in); err != nil {
		return nil, err
	}
	if in.ID == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrInvalidPayload)
	}
	if err := store.DeletePost(ctx, d.DB, grant.OrganizationID, in.ID); err != nil {
		return nil, err
	}
	return map[string]bool{"success": true}, nil
}

type addCommentPayload struct {
	PostID    string `json:"post_id"`
	Content   string `json:"content"`
	CreatedBy string `json:"created_by"`
}

func (d *Dispatcher) addComment(ctx context.Context, grant domain.ShareGrant, payload json.RawMessage) (any, error) {
	var in addCommentPayload
	if err := decode(payload, &in); err != nil {
		return nil, err
	}
	if in.PostID == "" || in.Content == "" {
		return nil, fmt.Errorf("%w: post_id and content are required", domain.ErrInvalidPayload)
	}
	// The post must live in the grant's organization; a comment can never be
	// attached across tenants.
	if _, err := store.GetPost(ctx, d.DB, grant.OrganizationID, in.PostID); err != nil {
		return nil, err
	}
	return store.CreateComment(ctx, d.DB, domain.Comment{
		ID:        uuid.NewString(),
		PostID:    in.PostID,
		Content:   in.Content,
		CreatedBy: authorLabel(in.CreatedBy),
	})
}

type addReviewPayload struct {
	PostID      string `json:"post_id"`
	Status      string `json:"status"`
	ReviewNotes string `json:"review_notes"`
	ReviewedBy  string `json:"reviewed_by"`
}

func (d *Dispatcher) addReview(ctx context.Context, grant domain.ShareGrant, payload json.RawMessage) (any, error) {
	var in addReviewPayload
	if err := decode(payload, &in); err != nil {
		return nil, err
	}
	if in.PostID == "" {
		return nil, fmt.Errorf("%w: post_id is required", domain.ErrInvalidPayload)
	}
	if in.Status != domain.ReviewApproved && in.Status != domain.ReviewRejected {
		return nil, fmt.Errorf("%w: review status %q", domain.ErrInvalidPayload, in.Status)
	}
	if _, err := store.GetPost(ctx, d.DB, grant.OrganizationID, in.PostID); err != nil {
		return nil, err
	}
	return store.CreateReview(ctx, d.DB, domain.Review{
		ID:          uuid.NewString(),
		PostID:      in.PostID,
		Status:      in.Status,
		ReviewNotes: in.ReviewNotes,
		ReviewedBy:  authorLabel(in.ReviewedBy),
	})
}

func decode(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: missing payload", domain.ErrInvalidPayload)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return nil
}

// authorLabel normalizes caller-supplied attribution. The name is free text
// from an anonymous caller: blank becomes "Anonymous", and markup is stripped
// since the label is rendered to other viewers.
func authorLabel(name string) string {
	name = strings.TrimSpace(sanitizerStrict.Sanitize(name))
	if name == "" {
		return AnonymousAuthor
	}
	return name
}
