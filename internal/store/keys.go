package store

// Key inventory. All application state lives under these keys; the
// "publicspace" prefix matches the original client's storage naming.
const (
	// KeyUsers holds the JSON array of all known users.
	KeyUsers = "publicspace:users"
	// KeyCurrentUser holds the JSON record of the active user.
	KeyCurrentUser = "publicspace:current_user"
	// KeyPosts holds the JSON array of all posts.
	KeyPosts = "publicspace:posts"
	// KeyProfile holds the editable profile fields blob.
	KeyProfile = "publicspace:profile"
)
