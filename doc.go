// Package dart implements a randomized decision tree for binary
// classification over binary-valued features that supports efficient,
// exact-shape deletion of training samples after the fact.
//
// A Tree is built once from a feature matrix and a label vector and can
// then be asked to forget a batch of training rows without a full
// retrain: Remove walks only the nodes those rows pass through, and
// retrains the minimal subtree rooted at the shallowest node whose split
// decision would plausibly change under the randomized selection rule.
package dart
