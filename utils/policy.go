package utils

// CanAccess is the single ownership policy for bookings, reviews and
// notifications: the owner of the resource may act on it, and admins may
// act on anything.
func CanAccess(actorID uint, ownerID uint, role string) bool {
	if actorID == ownerID {
		return true
	}
	return role == "admin"
}
