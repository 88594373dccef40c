package store

var ToContactModel = toContactModel
