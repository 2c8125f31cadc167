package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"social-service/internal/models"
	"social-service/internal/repository"
	"social-service/pkg/response"

	"gorm.io/gorm"
)

// EventEmitter receives relationship events. Emission is fire-and-forget
// from the engine's point of view: a failing emitter never fails the
// operation that triggered it.
type EventEmitter interface {
	Emit(ctx context.Context, event models.RelationshipEvent) error
}

// FriendService enforces the legal transitions between strangers, pending
// request and friends for every pair of users. Each mutating method resolves
// both usernames, takes the pair lock, re-checks the current state and
// applies the change, so two conflicting calls on the same pair serialize
// and exactly one of them wins.
type FriendService interface {
	SendRequest(ctx context.Context, sender, receiver string) (*response.Payload, error)
	CheckRequest(ctx context.Context, sender, receiver string) (*response.Payload, error)
	CheckFriendship(ctx context.Context, user1, user2 string) (*response.Payload, error)
	GetAllFriendsUsernames(ctx context.Context, username string) ([]string, error)
	AcceptRequest(ctx context.Context, sender, receiver string) (*response.Payload, error)
	CancelRequest(ctx context.Context, sender, receiver string) (*response.Payload, error)
	DeclineRequest(ctx context.Context, sender, receiver string) (*response.Payload, error)
	Unfriend(ctx context.Context, unfriender, unfriended string) (*response.Payload, error)
}

type friendService struct {
	userRepo   repository.UserRepository
	friendRepo repository.FriendRepository
	emitter    EventEmitter
	locks      pairLock
}

func NewFriendService(userRepo repository.UserRepository, friendRepo repository.FriendRepository, emitter EventEmitter) FriendService {
	return &friendService{
		userRepo:   userRepo,
		friendRepo: friendRepo,
		emitter:    emitter,
	}
}

func (s *friendService) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewError(http.StatusNotFound,
				fmt.Sprintf("User with username %s not found", username))
		}
		return nil, fmt.Errorf("looking up user %s: %w", username, err)
	}
	return user, nil
}

func (s *friendService) SendRequest(ctx context.Context, senderName, receiverName string) (*response.Payload, error) {
	sender, err := s.resolveUser(ctx, senderName)
	if err != nil {
		return nil, err
	}
	receiver, err := s.resolveUser(ctx, receiverName)
	if err != nil {
		return nil, err
	}

	if sender.ID == receiver.ID {
		return nil, response.NewError(http.StatusBadRequest,
			fmt.Sprintf("Cannot send a friend request to oneself (%s)", senderName))
	}

	mu := s.locks.lock(sender.ID, receiver.ID)
	defer mu.Unlock()

	friends, err := s.friendRepo.FriendshipExists(ctx, sender.ID, receiver.ID)
	if err != nil {
		return nil, fmt.Errorf("checking friendship: %w", err)
	}
	if friends {
		return nil, response.NewError(http.StatusBadRequest,
			fmt.Sprintf("Cannot send a friend request when already friends (from %s to %s)", senderName, receiverName))
	}

	sent, err := s.friendRepo.RequestExists(ctx, sender.ID, receiver.ID)
	if err != nil {
		return nil, fmt.Errorf("checking pending request: %w", err)
	}
	if sent {
		return nil, response.NewError(http.StatusBadRequest,
			fmt.Sprintf("Cannot send a friend request twice (from %s to %s)", senderName, receiverName))
	}

	received, err := s.friendRepo.RequestExists(ctx, receiver.ID, sender.ID)
	if err != nil {
		return nil, fmt.Errorf("checking reciprocal request: %w", err)
	}
	if received {
		// The message names the existing request's direction.
		return nil, response.NewError(http.StatusBadRequest,
			fmt.Sprintf("Cannot send a friend request when having one already received (from %s to %s)", receiverName, senderName))
	}

	if err := s.friendRepo.CreateRequest(ctx, sender.ID, receiver.ID); err != nil {
		return nil, fmt.Errorf("creating friend request: %w", err)
	}

	s.emit(ctx, models.RelationshipEvent{
		Type:        models.EventRequestSent,
		EmitterID:   sender.ID,
		Emitter:     senderName,
		ReceiverID:  receiver.ID,
		Receiver:    receiverName,
		Description: fmt.Sprintf("%s sent you a friend request", senderName),
	})

	return response.Ok(fmt.Sprintf("Friend request sent successfully (from %s to %s)", senderName, receiverName)), nil
}

func (s *friendService) CheckRequest(ctx context.Context, senderName, receiverName string) (*response.Payload, error) {
	sender, err := s.resolveUser(ctx, senderName)
	if err != nil {
		return nil, err
	}
	receiver, err := s.resolveUser(ctx, receiverName)
	if err != nil {
		return nil, err
	}

	exists, err := s.friendRepo.RequestExists(ctx, sender.ID, receiver.ID)
	if err != nil {
		return nil, fmt.Errorf("checking pending request: %w", err)
	}
	if !exists {
		return response.NotFound(fmt.Sprintf("No friend request found (from %s to %s)", senderName, receiverName)), nil
	}
	return response.Ok(fmt.Sprintf("Friend request found (from %s to %s)", senderName, receiverName)), nil
}

func (s *friendService) CheckFriendship(ctx context.Context, user1Name, user2Name string) (*response.Payload, error) {
	user1, err := s.resolveUser(ctx, user1Name)
	if err != nil {
		return nil, err
	}
	user2, err := s.resolveUser(ctx, user2Name)
	if err != nil {
		return nil, err
	}

	exists, err := s.friendRepo.FriendshipExists(ctx, user1.ID, user2.ID)
	if err != nil {
		return nil, fmt.Errorf("checking friendship: %w", err)
	}
	if !exists {
		return response.NotFound(fmt.Sprintf("No friendship found (between %s and %s)", user1Name, user2Name)), nil
	}
	return response.Ok(fmt.Sprintf("Friendship found (between %s and %s)", user1Name, user2Name)), nil
}

func (s *friendService) GetAllFriendsUsernames(ctx context.Context, username string) ([]string, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	usernames, err := s.friendRepo.FriendUsernamesOf(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing friends: %w", err)
	}
	if usernames == nil {
		usernames = []string{}
	}
	return usernames, nil
}

// AcceptRequest completes the request sent by senderName; receiverName is
// the accepter. If only the reverse-direction request exists the caller is
// the original sender and gets the role error, not a not-found.
func (s *friendService) AcceptRequest(ctx context.Context, senderName, receiverName string) (*response.Payload, error) {
	sender, err := s.resolveUser(ctx, senderName)
	if err != nil {
		return nil, err
	}
	receiver, err := s.resolveUser(ctx, receiverName)
	if err != nil {
		return nil, err
	}

	mu := s.locks.lock(sender.ID, receiver.ID)
	defer mu.Unlock()

	exists, err := s.friendRepo.RequestExists(ctx, sender.ID, receiver.ID)
	if err != nil {
		return nil, fmt.Errorf("checking pending request: %w", err)
	}
	if exists {
		if err := s.friendRepo.AcceptRequest(ctx, sender.ID, receiver.ID); err != nil {
			return nil, fmt.Errorf("accepting friend request: %w", err)
		}
		s.emit(ctx, models.RelationshipEvent{
			Type:        models.EventRequestAccepted,
			EmitterID:   receiver.ID,
			Emitter:     receiverName,
			ReceiverID:  sender.ID,
			Receiver:    senderName,
			Description: fmt.Sprintf("%s accepted your friend request", receiverName),
		})
		return response.Ok(fmt.Sprintf("Friend request accepted successfully (from %s accepted by %s)", senderName, receiverName)), nil
	}

	reverse, err := s.friendRepo.RequestExists(ctx, receiver.ID, sender.ID)
	if err != nil {
		return nil, fmt.Errorf("checking reverse request: %w", err)
	}
	if reverse {
		return nil, response.NewError(http.StatusBadRequest,
			fmt.Sprintf("Cannot accept one's own friend request (from %s to %s)", receiverName, senderName))
	}
	return nil, response.NewError(http.StatusBadRequest,
		fmt.Sprintf("Cannot accept friend request when no friend request found (from %s to %s)", senderName, receiverName))
}

// CancelRequest withdraws the request sent by senderName. Called with the
// parameters swapped (the receiver trying to cancel) it reports the
// ownership error.
func (s *friendService) CancelRequest(ctx context.Context, senderName, receiverName string) (*response.Payload, error) {
	sender, err := s.resolveUser(ctx, senderName)
	if err != nil {
		return nil, err
	}
	receiver, err := s.resolveUser(ctx, receiverName)
	if err != nil {
		return nil, err
	}

	mu := s.locks.lock(sender.ID, receiver.ID)
	defer mu.Unlock()

	exists, err := s.friendRepo.RequestExists(ctx, sender.ID, receiver.ID)
	if err != nil {
		return nil, fmt.Errorf("checking pending request: %w", err)
	}
	if exists {
		if err := s.friendRepo.DeleteRequest(ctx, sender.ID, receiver.ID); err != nil {
			return nil, fmt.Errorf("canceling friend request: %w", err)
		}
		s.emit(ctx, models.RelationshipEvent{
			Type:        models.EventRequestCanceled,
			EmitterID:   sender.ID,
			Emitter:     senderName,
			ReceiverID:  receiver.ID,
			Receiver:    receiverName,
			Description: fmt.Sprintf("%s canceled their friend request", senderName),
		})
		return response.Ok(fmt.Sprintf("Friend request canceled successfully (from %s to %s)", senderName, receiverName)), nil
	}

	reverse, err := s.friendRepo.RequestExists(ctx, receiver.ID, sender.ID)
	if err != nil {
		return nil, fmt.Errorf("checking reverse request: %w", err)
	}
	if reverse {
		return nil, response.NewError(http.StatusBadRequest,
			fmt.Sprintf("Cannot cancel someone else's friend request (from %s to %s)", receiverName, senderName))
	}
	return nil, response.NewError(http.StatusBadRequest,
		fmt.Sprintf("Cannot cancel friend request when no friend request found (from %s to %s)", senderName, receiverName))
}

// DeclineRequest turns down the request sent by senderName; receiverName is
// the decliner.
func (s *friendService) DeclineRequest(ctx context.Context, senderName, receiverName string) (*response.Payload, error) {
	sender, err := s.resolveUser(ctx, senderName)
	if err != nil {
		return nil, err
	}
	receiver, err := s.resolveUser(ctx, receiverName)
	if err != nil {
		return nil, err
	}

	mu := s.locks.lock(sender.ID, receiver.ID)
	defer mu.Unlock()

	exists, err := s.friendRepo.RequestExists(ctx, sender.ID, receiver.ID)
	if err != nil {
		return nil, fmt.Errorf("checking pending request: %w", err)
	}
	if exists {
		if err := s.friendRepo.DeleteRequest(ctx, sender.ID, receiver.ID); err != nil {
			return nil, fmt.Errorf("declining friend request: %w", err)
		}
		s.emit(ctx, models.RelationshipEvent{
			Type:        models.EventRequestDeclined,
			EmitterID:   receiver.ID,
			Emitter:     receiverName,
			ReceiverID:  sender.ID,
			Receiver:    senderName,
			Description: fmt.Sprintf("%s declined your friend request", receiverName),
		})
		return response.Ok(fmt.Sprintf("Friend request declined successfully (from %s to %s)", senderName, receiverName)), nil
	}

	reverse, err := s.friendRepo.RequestExists(ctx, receiver.ID, sender.ID)
	if err != nil {
		return nil, fmt.Errorf("checking reverse request: %w", err)
	}
	if reverse {
		return nil, response.NewError(http.StatusBadRequest,
			fmt.Sprintf("Cannot decline one's own friend request (from %s to %s)", receiverName, senderName))
	}
	return nil, response.NewError(http.StatusBadRequest,
		fmt.Sprintf("Cannot decline friend request when no friend request found (from %s to %s)", senderName, receiverName))
}

func (s *friendService) Unfriend(ctx context.Context, unfrienderName, unfriendedName string) (*response.Payload, error) {
	unfriender, err := s.resolveUser(ctx, unfrienderName)
	if err != nil {
		return nil, err
	}
	unfriended, err := s.resolveUser(ctx, unfriendedName)
	if err != nil {
		return nil, err
	}

	mu := s.locks.lock(unfriender.ID, unfriended.ID)
	defer mu.Unlock()

	exists, err := s.friendRepo.FriendshipExists(ctx, unfriender.ID, unfriended.ID)
	if err != nil {
		return nil, fmt.Errorf("checking friendship: %w", err)
	}
	if !exists {
		return nil, response.NewError(http.StatusBadRequest,
			fmt.Sprintf("Cannot unfriend when no friendship found (between %s and %s)", unfrienderName, unfriendedName))
	}

	if err := s.friendRepo.DeleteFriendship(ctx, unfriender.ID, unfriended.ID); err != nil {
		return nil, fmt.Errorf("deleting friendship: %w", err)
	}

	s.emit(ctx, models.RelationshipEvent{
		Type:        models.EventUnfriended,
		EmitterID:   unfriender.ID,
		Emitter:     unfrienderName,
		ReceiverID:  unfriended.ID,
		Receiver:    unfriendedName,
		Description: fmt.Sprintf("%s removed you from their friends", unfrienderName),
	})

	return response.Ok(fmt.Sprintf("Unfriend successfully done (%s unfriended %s)", unfrienderName, unfriendedName)), nil
}

func (s *friendService) emit(ctx context.Context, event models.RelationshipEvent) {
	if s.emitter == nil {
		return
	}
	event.CreatedAt = time.Now()
	if err := s.emitter.Emit(ctx, event); err != nil {
		slog.Error("failed to emit relationship event", "type", event.Type, "error", err)
	}
}
