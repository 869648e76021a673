package waql

// Properties are the WAAPI object properties offered by completion, usable in
// where clauses and as return fields.
var Properties = []string{
	"id", "name", "notes", "type", "path", "shortId", "classId", "category",
	"filePath", "workunit", "workunitIsDefault", "workunitType", "isPlayable",
	"isExplicitMute", "isExplicitSolo", "isImplicitMute", "isImplicitSolo",
	"childrenCount", "totalSize", "mediaSize", "duration", "maxDurationSource",
	"audioSourceTrimValues", "audioSourceLanguage", "originalFilePath",
	"originalWavFilePath", "convertedFilePath", "convertedWemFilePath",
	"soundbankBnkFilePath", "isIncludedInSoundbank", "musicTransitionRoot",
	"musicPlaylistRoot", "pluginName", "effectDisplayName", "stateGroup",
	"switchGroupOrStateGroup", "isDefault", "owner", "parent", "color",
	"sound:originalWavFilePath", "sound:convertedWemFilePath",
	"sound:mediaSize", "music:transitionRoot", "music:playlistRoot",
	"Volume", "Pitch", "Lowpass", "Highpass", "MakeUpGain", "InitialDelay",
	"OutputBus", "OutputBusVolume", "OutputBusLowpass", "OutputBusHighpass",
	"UserAuxSend0", "UserAuxSend1", "UserAuxSend2", "UserAuxSend3",
	"UserAuxSendVolume0", "UserAuxSendVolume1", "UserAuxSendVolume2",
	"UserAuxSendVolume3", "GameAuxSendVolume", "UseGameAuxSends",
	"OverrideOutput", "OverrideGameAuxSends", "OverrideUserAuxSends",
	"Inclusion", "IsLoopingEnabled", "IsLoopingInfinite", "LoopCount",
	"IsStreamingEnabled", "IsZeroLatency", "IsNonCachable", "PreFetchLength",
	"Priority", "PriorityDistanceFactor", "PriorityDistanceOffset",
	"UseMaxSoundPerInstance", "MaxSoundPerInstance", "IsGlobalLimit",
	"OverLimitBehavior", "MaxReachedBehavior", "IgnoreParentMaxSoundInstance",
	"Weight", "HdrActiveRange", "HdrEnableEnvelope", "CenterPercentage",
	"Conversion", "OverrideConversion", "Attenuation", "EnableAttenuation",
	"3DSpatialization", "3DPosition", "ListenerRelativeRouting",
	"SpeakerPanning", "EnableDiffraction", "ReflectionsAuxSend",
	"ReflectionsVolume", "PlayMechanismLoop", "PlayMechanismStepOrContinuous",
	"RandomOrSequence", "NormalOrShuffle", "RestartBeginningOrBackward",
	"GlobalOrPerObject", "SwitchGroupOrStateGroup", "DefaultSwitchOrState",
	"Target", "ActionType", "Delay", "FadeTime", "Scope",
	"Effect0", "Effect1", "Effect2", "Effect3", "BypassEffect", "RenderEffect0",
	"Tempo", "TimeSignatureLower", "TimeSignatureUpper", "EndPosition",
	"Color", "OverrideColor", "Language", "IsVoice",
}

// Accessors navigate from an object to related objects
var Accessors = []string{
	"parent", "children", "descendants", "ancestors",
	"referencesTo", "referencesFrom",
	"activeSource", "audioSources", "effects", "owner",
	"workunit", "mixer", "output", "auxSends",
	"switchContainerChild", "musicSegment", "musicTrack",
	"stateGroups", "stateProperties",
}
