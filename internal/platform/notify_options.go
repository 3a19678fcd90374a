package platform

// DefaultAppName is reported to the notification centre when Options leaves
// AppName empty.
const DefaultAppName = "PixelArt"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender where the platform shows it.
	AppName string
	// IconPath, when non-empty, points to an image file the notification
	// centre should show with the message if the platform supports it.
	IconPath string
	// TimeoutMS is how long the message stays up; zero leaves it to the
	// platform where possible.
	TimeoutMS int32
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

func (o Options) timeout() int32 {
	if o.TimeoutMS <= 0 {
		return -1
	}
	return o.TimeoutMS
}
