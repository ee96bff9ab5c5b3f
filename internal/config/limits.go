package config

const (
	// MaxEmailLength is the maximum length for user emails.
	// Limited to 100 to fit in PostgreSQL VARCHAR(100).
	MaxEmailLength = 100

	// MinUsernameLength and MaxUsernameLength bound usernames.
	// Short enough to fit in VARCHAR(32), long enough to avoid
	// single-character handles.
	MinUsernameLength = 4
	MaxUsernameLength = 32

	// MinPasswordLength and MaxPasswordLength bound raw passwords
	// before hashing. The upper bound also keeps input below the
	// 72-byte limit bcrypt silently truncates at.
	MinPasswordLength = 8
	MaxPasswordLength = 32

	// MaxFullnameLength is the maximum length for user full names.
	MaxFullnameLength = 300

	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 100 to fit in PostgreSQL VARCHAR(100).
	MaxFolderNameLength = 100

	// MaxFolderDescriptionLength is the maximum length for folder
	// descriptions.
	MaxFolderDescriptionLength = 1000
)
