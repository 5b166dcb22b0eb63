package redis

import (
	"fmt"

	"github.com/lnpoker/lnpoker/internal/model"
)

// Key prefix for all data
const keyPrefix = "lnpoker"

// accountKey returns the Redis key for an Account
func accountKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> player_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesByCreationKey returns the Redis key for the ZSET of games
// scored by creation time
func gamesByCreationKey() string {
	return fmt.Sprintf("%s:idx:games_by_creation", keyPrefix)
}

// reservationKey returns the Redis key for a Reservation
func reservationKey(token model.ReservationToken) string {
	return fmt.Sprintf("%s:reservation:%s", keyPrefix, token)
}
