package redisrepo

import "fmt"

const ns = "evently:v1"

func KeyEventDetails(eventID int64) string {
	return fmt.Sprintf("%s:event:%d:details", ns, eventID)
}

func KeyPlaceDetails(placeID int64) string {
	return fmt.Sprintf("%s:place:%d:details", ns, placeID)
}

// KeyListing is the cache key of one listing page. gen is the scope's
// current generation, so bumping it orphans every cached page at once.
func KeyListing(scope string, gen int64, filterHash string) string {
	return fmt.Sprintf("%s:%s:list:g%d:%s", ns, scope, gen, filterHash)
}

func KeyListingGeneration(scope string) string {
	return fmt.Sprintf("%s:%s:list:gen", ns, scope)
}

func KeyRateLimitPrefix() string {
	return ns + ":rl"
}

func KeyIdem(scope string, resource, userID int64, idemKey string) string {
	return fmt.Sprintf("%s:idem:%s:%d:%d:%s", ns, scope, resource, userID, idemKey)
}

func ChannelCatalogChanged() string {
	return ns + ":catalog:changed"
}
