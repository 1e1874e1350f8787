package database

import (
	"github.com/thereayou/taskboard/internal/models"
)

func (d *Database) Follow(followerID, followedID string) error {
	var follower, followed models.User

	if err := d.db.First(&follower, "id = ?", followerID).Error; err != nil {
		return err
	}

	if err := d.db.First(&followed, "id = ?", followedID).Error; err != nil {
		return err
	}

	return d.db.Model(&follower).Association("Follows").Append(&followed)
}

func (d *Database) Unfollow(followerID, followedID string) error {
	var follower, followed models.User

	if err := d.db.First(&follower, "id = ?", followerID).Error; err != nil {
		return err
	}

	if err := d.db.First(&followed, "id = ?", followedID).Error; err != nil {
		return err
	}

	return d.db.Model(&follower).Association("Follows").Delete(&followed)
}

func (d *Database) IsFollowing(followerID, followedID string) (bool, error) {
	var count int64
	err := d.db.Table("follows").
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *Database) ListFollowing(userID string) ([]models.User, error) {
	var user models.User
	if err := d.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	var following []models.User
	if err := d.db.Model(&user).Association("Follows").Find(&following); err != nil {
		return nil, err
	}
	return following, nil
}
