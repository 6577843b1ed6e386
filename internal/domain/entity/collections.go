package entity

// Persisted collection names. Renaming any of these is a breaking schema
// change; the mobile clients read the same paths.
const (
	CollectionUsers       = "users"
	CollectionRooms       = "rooms"
	CollectionCommunities = "communities"
	CollectionCampaigns   = "campaigns"
	CollectionMatches     = "matches"
	CollectionChats       = "chats"
	CollectionMessages    = "messages"
	CollectionAIInsights  = "aiInsights"
)

// Subcollection paths.

func PostsCollection(communityID string) string {
	return CollectionCommunities + "/" + communityID + "/posts"
}

func CommentsCollection(communityID, postID string) string {
	return PostsCollection(communityID) + "/" + postID + "/comments"
}

func MessagesCollection(chatID string) string {
	return CollectionChats + "/" + chatID + "/" + CollectionMessages
}

func SwipesCollection(userID string) string {
	return CollectionUsers + "/" + userID + "/swipes"
}
