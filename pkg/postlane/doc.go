// Package postlane coordinates the lifecycle of posts whose attachments live
// in an external object store while their records live in a relational store.
//
// The two stores fail independently and share no transaction, so every
// multi-step operation follows an explicit compensation policy: no orphan
// rows, tolerate orphan objects. Uploads are all-or-nothing per batch, post
// rows are only deleted after every attachment object is gone, and creation
// notifications are fire-and-forget.
//
// Storage backends, relational repositories, and notification sinks are
// pluggable through the ContentStore, BlobStore, and NotificationSink
// interfaces; implementations ship in the repo, storage, and notify
// sub-packages.
package postlane
