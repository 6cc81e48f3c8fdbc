package domain

import "fmt"

const (
	TextStart = "Hi! Welcome to Banger Bot! 👋\n\n" +
		"It is meant for you and your friends to share music on a group chat and automatically " +
		"upload it to a Google Drive folder you set up.\n\n" +
		"Send a Youtube link and the audio ends up in Drive. Send an audio file and you can Shazam it too!\n" +
		"Enjoy your music with your friends! 🎉"
	TextHelp = "We're here to help! 😀\n\n" +
		"For the bot to work, a Google Drive project has to be set up and this bot authorized to edit it. " +
		"From there on the bot listens to relevant URLs and takes care of downloading and uploading your music.\n\n" +
		"Tags can follow the link: <link> && artist: Foo && album: Bar && year: 2014 && track: 3 " +
		"&& genre: House && title: Song && folder: Mixtape\n\n" +
		"Step-by-step guidance lives in the Github repository below 😊"
	HelpLinkText = "Github Page"
	HelpLinkURL  = "https://github.com/LuchoTurtle/banger-bot"

	TextUnsupportedProvider = "We are yet to support URLs from this place 😕."
	TextInvalidTarget       = "This URL does not point to a valid Youtube video ❌.\nAre you sure it's not a channel? 🤔"

	TextDownloadStarted  = "Got it! Going to download the file now and try to upload it to Google Drive. Gimme a few seconds ⌛!"
	TextDownloadFinished = "Done downloading from Youtube!"
	TextDownloadFailed   = "There was a problem downloading the audio from this Youtube link ❌."

	TextUploadFailed       = "We managed to download the audio but failed to upload on Google Drive ❌."
	TextFolderCreateFailed = "We couldn't find or create that Google Drive folder ❌."
	TextInvalidMetadata    = "Google Drive didn't accept this file's name or type ❌."
	TextFileMissing        = "The downloaded file went missing before the upload ❌."

	TextChooseAction    = "What do you want to do with this file? 🎶"
	TextIdentifyButton  = "Shazam it 🔎"
	TextUploadButton    = "Upload to Google Drive ☁️"
	TextIdentifying     = "Shazaming your file... 🎧"
	TextIdentified      = "Found it! 🎉"
	TextNotDetected     = "Couldn't detect this song 😔."
	TextUploadingFile   = "Uploading your file to Google Drive ⌛"
	TextFileUploaded    = "Your file has been uploaded to Google Drive ✅"
	TextNotPermitted    = "This action is not permitted ❌."
	TextGenericFailure  = "Something went wrong while handling this file ❌."
	textDownloadPercent = "Downloading from Youtube: %d%%"
	textUploadPercent   = "Uploading to Google Drive: %d%%"
	textUploaded        = "Your song \"%s\" has been uploaded ✅"
)

// ProgressStep is the granularity of progress shown to the user. Updates inside the same
// step render the same text and are not sent again.
const ProgressStep = 5

func roundProgress(percent float64) int {
	switch {
	case percent <= 0:
		return 0
	case percent >= 100:
		return 100
	default:
		return int(percent) / ProgressStep * ProgressStep
	}
}

// DownloadProgressText is the status line for an extraction progress update.
func DownloadProgressText(p Progress) string {
	switch p.Stage {
	case StageFinished, StagePostProcessing:
		return TextDownloadStarted + "\n" + TextDownloadFinished
	default:
		return TextDownloadStarted + "\n" + fmt.Sprintf(textDownloadPercent, roundProgress(p.Percent))
	}
}

// UploadProgressText is the status line for an upload progress update.
func UploadProgressText(percent int) string {
	return TextDownloadStarted + "\n" + TextDownloadFinished + "\n" + fmt.Sprintf(textUploadPercent, roundProgress(float64(percent)))
}

func UploadedText(title string) string {
	return fmt.Sprintf(textUploaded, title)
}
