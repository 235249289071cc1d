package pathkit

// FileURL renders a canonical path as a file:// link target.
//
//	FileURL("/Users/john")     // "file:///Users/john"
//	FileURL("C:")              // "file:///C:/"
//	FileURL("C:/Users")        // "file:///C:/Users"
//	FileURL("//server/share")  // "file://server/share"
//
// Relative paths are appended to the scheme as-is. Empty input yields "".
func FileURL(path string) string {
	switch {
	case path == "":
		return ""
	case driveToken.MatchString(path):
		return fileScheme + "/" + path + "/"
	case IsDrive(path):
		return fileScheme + "/" + path
	case IsUNC(path):
		return "file:" + path
	default:
		return fileScheme + path
	}
}
