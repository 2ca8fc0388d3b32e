// Package email delivers restock alerts by e-mail.
//
// Two Sender implementations are provided:
//
//   - NewPostmarkClient sends through Postmark's transactional API.
//   - NewDevSender writes each message to a directory as an .html file plus a
//     .json metadata file, for local runs without credentials.
//
// Both validate the Message before doing any I/O and report failures wrapped
// in ErrFailedToSend:
//
//	sender, err := email.NewPostmarkClient(cfg)
//	if err != nil {
//	    return err
//	}
//	err = sender.Send(ctx, email.Message{
//	    To:       "a@x.com",
//	    Subject:  "iphone-15 is back in stock",
//	    HTMLBody: "<p>product is back in stock!!!</p>",
//	    Tag:      "restock",
//	})
//
// Retries are deliberately left to the caller.
package email
