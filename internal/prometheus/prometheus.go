package prometheus

const namespace = "osbuild"

const storeSubsystem = "store"
