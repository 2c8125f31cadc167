package models

import "time"

// FriendRequest is an ordered pair: SenderID asked ReceiverID. The unique
// index covers the ordered pair only; the service layer guarantees the
// unordered pair is unique across both directions before inserting.
type FriendRequest struct {
	ID         uint `gorm:"primarykey" json:"id"`
	SenderID   uint `gorm:"not null;uniqueIndex:idx_friend_requests_pair" json:"senderId"`
	ReceiverID uint `gorm:"not null;uniqueIndex:idx_friend_requests_pair" json:"receiverId"`

	Sender   User `gorm:"foreignKey:SenderID;references:ID" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID;references:ID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// Friendship is an unordered pair stored as a single row; queries always
// match both column orders.
type Friendship struct {
	ID      uint `gorm:"primarykey" json:"id"`
	User1ID uint `gorm:"not null;uniqueIndex:idx_friendships_pair" json:"user1Id"`
	User2ID uint `gorm:"not null;uniqueIndex:idx_friendships_pair" json:"user2Id"`

	User1 User `gorm:"foreignKey:User1ID;references:ID" json:"-"`
	User2 User `gorm:"foreignKey:User2ID;references:ID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}
