package social

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"promptmarket/models"
)

// CommentPreview is the shape comments take inside feeds and comment listings.
type CommentPreview struct {
	UserAccount string    `json:"user_account"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

// TopCommentLimit is how many recent comments ride along with a prompt.
const TopCommentLimit = 2

func promptExists(db *gorm.DB, promptID uint, promptType models.PromptType) error {
	var n int64
	err := db.Model(&models.Prompt{}).
		Where("id = ? AND prompt_type = ?", promptID, promptType).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPromptNotFound
	}
	return nil
}

// LikePrompt inserts a like for (prompt, type, account) and returns the
// recomputed like total. A second like for the same triple fails with
// ErrAlreadyLiked; the unique index catches the race two concurrent calls
// would otherwise win together.
func LikePrompt(db *gorm.DB, promptID uint, promptType models.PromptType, userAccount string) (int64, error) {
	if err := promptExists(db, promptID, promptType); err != nil {
		return 0, err
	}

	var existing int64
	err := db.Model(&models.PostLike{}).
		Where("prompt_id = ? AND prompt_type = ? AND user_account = ?", promptID, promptType, userAccount).
		Count(&existing).Error
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, ErrAlreadyLiked
	}

	like := models.PostLike{
		PromptID:    promptID,
		PromptType:  promptType,
		UserAccount: userAccount,
	}
	if err := db.Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrAlreadyLiked
		}
		return 0, err
	}

	var total int64
	err = db.Model(&models.PostLike{}).
		Where("prompt_id = ? AND prompt_type = ?", promptID, promptType).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// CommentPrompt stores a comment and returns the recomputed comment total plus
// the latest previews for the prompt.
func CommentPrompt(db *gorm.DB, promptID uint, promptType models.PromptType, userAccount, text string) (int64, []CommentPreview, error) {
	if err := promptExists(db, promptID, promptType); err != nil {
		return 0, nil, err
	}

	comment := models.PostComment{
		PromptID:    promptID,
		PromptType:  promptType,
		UserAccount: userAccount,
		Comment:     text,
	}
	if err := db.Create(&comment).Error; err != nil {
		return 0, nil, err
	}

	latest, total, err := GetPromptComments(db, promptID, promptType, TopCommentLimit)
	if err != nil {
		return 0, nil, err
	}
	return total, latest, nil
}

// GetPromptComments returns up to limit comments for a prompt, newest first,
// with the unbounded total.
func GetPromptComments(db *gorm.DB, promptID uint, promptType models.PromptType, limit int) ([]CommentPreview, int64, error) {
	if err := promptExists(db, promptID, promptType); err != nil {
		return nil, 0, err
	}
	if limit < 1 {
		limit = TopCommentLimit
	}

	var total int64
	err := db.Model(&models.PostComment{}).
		Where("prompt_id = ? AND prompt_type = ?", promptID, promptType).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var comments []models.PostComment
	err = db.Where("prompt_id = ? AND prompt_type = ?", promptID, promptType).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	previews := make([]CommentPreview, 0, len(comments))
	for _, c := range comments {
		previews = append(previews, CommentPreview{
			UserAccount: c.UserAccount,
			Comment:     c.Comment,
			CreatedAt:   c.CreatedAt,
		})
	}
	return previews, total, nil
}

// PromptLikeStatus reports the like total for a prompt and whether the given
// account has liked it. The prompt is looked up by id alone, either kind.
func PromptLikeStatus(db *gorm.DB, promptID uint, userAccount string) (int64, bool, error) {
	var n int64
	if err := db.Model(&models.Prompt{}).Where("id = ?", promptID).Count(&n).Error; err != nil {
		return 0, false, err
	}
	if n == 0 {
		return 0, false, ErrPromptNotFound
	}

	var likes int64
	err := db.Model(&models.PostLike{}).Where("prompt_id = ?", promptID).Count(&likes).Error
	if err != nil {
		return 0, false, err
	}

	var mine int64
	err = db.Model(&models.PostLike{}).
		Where("prompt_id = ? AND user_account = ?", promptID, userAccount).
		Count(&mine).Error
	if err != nil {
		return 0, false, err
	}
	return likes, mine > 0, nil
}
