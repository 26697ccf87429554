package session

import "fmt"

const (
	messageLiveFormat          = ":red_circle: **%s** is live now with %s."
	messageLiveTopicFormat     = "-# Topic: %s"
	messageEndedFormat         = ":stop_button: **%s** has ended after %s."
	messageEndedAttachmentHint = "-# The session summary is attached."
)

func liveAnnouncementText(sess Session) string {
	text := fmt.Sprintf(messageLiveFormat, sess.Title, sess.Instructor)
	if sess.Topic != "" {
		text += "\n" + fmt.Sprintf(messageLiveTopicFormat, sess.Topic)
	}
	return text
}

func endedAnnouncementText(sess Session, elapsed string) string {
	return fmt.Sprintf(messageEndedFormat, sess.Title, elapsed) + "\n" + messageEndedAttachmentHint
}
