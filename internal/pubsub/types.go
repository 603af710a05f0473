package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// Sharer publishes every shared message as an event on a topic.
type Sharer struct {
	client PubSubClient
	topic  string
}
